// Package match drives the level-escalating matching algorithm of
// spec.md §4.3-§4.5 to a fixed point: rank candidates with pkg/classify,
// propose the best one per entity, resolve collisions between competing
// proposers, commit survivors to a Store, and propagate hierarchy-implied
// matches before advancing to the next level.
//
// This mirrors the teacher's generator/analyzer split — a read-only
// concurrent scan producing candidates, followed by a serial assembly
// step — except here the scan is ranking and the assembly is committing.
package match

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/relabel/classmatch/internal/config"
	"github.com/relabel/classmatch/pkg/classify"
	"github.com/relabel/classmatch/pkg/model"
	"github.com/relabel/classmatch/pkg/utils"
)

// Driver runs the matcher over a pair of already-assembled, already
// validated images.
type Driver struct {
	Named   *model.Image
	Unnamed *model.Image

	Framework *classify.Framework
	Config    *config.Config
	Logger    *slog.Logger

	// RunID identifies this run in logs and reports, since a single
	// process may drive several matcher runs over the same images.
	RunID string

	instrumentation *utils.Instrumentation
	store           *Store
}

// NewDriver constructs a driver. logger may be nil, in which case
// slog.Default() is used.
func NewDriver(named, unnamed *model.Image, framework *classify.Framework, cfg *config.Config, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	return &Driver{
		Named:           named,
		Unnamed:         unnamed,
		Framework:       framework,
		Config:          cfg,
		Logger:          logger,
		RunID:           runID,
		instrumentation: utils.NewInstrumentation(logger, true),
		store:           NewStore(),
	}
}

// Run validates both images, then executes every configured level in
// order, iterating classes/methods/fields passes within a level until a
// pass produces no new commits (spec.md §4.3's "until a fixed point").
// It returns the populated Store; the committed pairs are also visible
// directly on the model entities' Match fields.
func (d *Driver) Run(ctx context.Context) (*Store, error) {
	if err := d.Named.Validate(); err != nil {
		return nil, &ImageInconsistentError{Cause: err}
	}
	if err := d.Unnamed.Validate(); err != nil {
		return nil, &ImageInconsistentError{Cause: err}
	}

	levels, err := d.Config.ParsedLevels()
	if err != nil {
		return nil, err
	}

	phases := d.instrumentation.NewPhaseTracker("match-run")
	totalClasses := len(d.Named.RealClasses())

	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return d.store, Cancelled
		}
		phases.StartPhase(level.String())
		d.Logger.Info("entering matching level", "level", level.String())

		for {
			if err := ctx.Err(); err != nil {
				return d.store, Cancelled
			}

			changedClasses, err := d.matchClassesPass(ctx, level)
			if err != nil {
				return d.store, err
			}
			changedMethods, err := d.matchMethodsPass(ctx, level)
			if err != nil {
				return d.store, err
			}
			changedFields, err := d.matchFieldsPass(ctx, level)
			if err != nil {
				return d.store, err
			}

			if !changedClasses && !changedMethods && !changedFields {
				break
			}
		}
	}
	phases.Complete(totalClasses)

	return d.store, nil
}

func (d *Driver) parallelism() int {
	if d.Config.Parallelism < 1 {
		return 1
	}
	return d.Config.Parallelism
}

// rankConcurrently runs rankOne over items with up to parallelism
// goroutines in flight, collecting every non-nil proposal it returns.
// pt, if non-nil, is updated as each item finishes so a caller scanning a
// large candidate set can see throughput in verbose logs.
func rankConcurrently[T comparable](ctx context.Context, items []T, parallelism int, pt *utils.ProgressTracker, rankOne func(T) (*proposal[T], error)) ([]proposal[T], error) {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallelism)
	var mu sync.Mutex
	var out []proposal[T]

	for _, item := range items {
		item := item
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			p, err := rankOne(item)
			if err != nil {
				return err
			}
			if p != nil {
				mu.Lock()
				out = append(out, *p)
				mu.Unlock()
			}
			if pt != nil {
				pt.Update(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, Cancelled
		}
		return nil, err
	}
	if pt != nil {
		pt.Complete()
	}
	return out, nil
}

func (d *Driver) matchClassesPass(ctx context.Context, level model.Level) (bool, error) {
	worklist := unmatchedRealClasses(d.Named)
	pool := unmatchedRealClasses(d.Unnamed)
	if len(worklist) == 0 || len(pool) == 0 {
		return false, nil
	}

	absolute := d.Config.AbsoluteThreshold(level)
	relative := d.Config.RelativeThreshold(level)

	rankOne := func(a *model.Class) (*proposal[*model.Class], error) {
		cands := classCandidates(a, pool)
		if len(cands) == 0 {
			return nil, nil
		}
		ranked, err := d.Framework.Classes.Rank(a, cands, level)
		if err != nil {
			return nil, &FeatureErrorContext{Cause: err, Level: level, AID: a.ID}
		}
		if len(ranked) == 0 || ranked[0].Score < absolute {
			return nil, nil
		}
		runnerUp := 0.0
		if len(ranked) > 1 {
			runnerUp = ranked[1].Score
		}
		if ranked[0].Score-runnerUp >= relative {
			d.store.ClearAmbiguousClass(a)
			return &proposal[*model.Class]{from: a, to: ranked[0].Entity, score: ranked[0].Score}, nil
		}
		if level == model.Final {
			d.store.MarkAmbiguousClass(a)
		}
		return nil, nil
	}

	pt := d.instrumentation.NewProgressTracker(level.String()+"-classes", len(worklist))
	proposals, err := rankConcurrently(ctx, worklist, d.parallelism(), pt, rankOne)
	if err != nil {
		return false, err
	}

	survivors := resolveProposals(proposals, relative, func(c *model.Class) string { return c.ID })

	changed := false
	for _, p := range survivors {
		if p.from.IsMatched() || p.to.IsMatched() {
			continue
		}
		if err := d.store.CommitClass(p.from, p.to, level, p.score); err != nil {
			continue
		}
		changed = true
		if d.Config.PropagateHierarchy {
			propagateHierarchy(d.store, p.from, p.to, level)
		}
	}
	return changed, nil
}

func (d *Driver) matchMethodsPass(ctx context.Context, level model.Level) (bool, error) {
	absolute := d.Config.AbsoluteThreshold(level)
	relative := d.Config.RelativeThreshold(level)

	var worklist []*model.Method
	ownerOf := make(map[*model.Method]*model.Class)
	for _, cm := range MatchedClasses(d.Named) {
		for _, m := range cm.A.MethodOrder {
			if m.Real && !m.IsMatched() {
				worklist = append(worklist, m)
				ownerOf[m] = cm.B
			}
		}
	}
	if len(worklist) == 0 {
		return false, nil
	}

	rankOne := func(m *model.Method) (*proposal[*model.Method], error) {
		cands := methodCandidates(m, ownerOf[m])
		if len(cands) == 0 {
			return nil, nil
		}
		ranked, err := d.Framework.Methods.Rank(m, cands, level)
		if err != nil {
			return nil, &FeatureErrorContext{Cause: err, Level: level, AID: m.Name}
		}
		if len(ranked) == 0 || ranked[0].Score < absolute {
			return nil, nil
		}
		runnerUp := 0.0
		if len(ranked) > 1 {
			runnerUp = ranked[1].Score
		}
		if ranked[0].Score-runnerUp >= relative {
			d.store.ClearAmbiguousMethod(m)
			return &proposal[*model.Method]{from: m, to: ranked[0].Entity, score: ranked[0].Score}, nil
		}
		if level == model.Final {
			d.store.MarkAmbiguousMethod(m)
		}
		return nil, nil
	}

	pt := d.instrumentation.NewProgressTracker(level.String()+"-methods", len(worklist))
	proposals, err := rankConcurrently(ctx, worklist, d.parallelism(), pt, rankOne)
	if err != nil {
		return false, err
	}

	survivors := resolveProposals(proposals, relative, methodSortKey)

	changed := false
	for _, p := range survivors {
		if p.from.IsMatched() || p.to.IsMatched() {
			continue
		}
		if err := d.store.CommitMethod(p.from, p.to, level, p.score); err != nil {
			continue
		}
		changed = true
	}
	return changed, nil
}

func (d *Driver) matchFieldsPass(ctx context.Context, level model.Level) (bool, error) {
	absolute := d.Config.AbsoluteThreshold(level)
	relative := d.Config.RelativeThreshold(level)

	var worklist []*model.Field
	ownerOf := make(map[*model.Field]*model.Class)
	for _, cm := range MatchedClasses(d.Named) {
		keys := make([]model.FieldKey, 0, len(cm.A.Fields))
		for k := range cm.A.Fields {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fieldKeyLess(keys[i], keys[j]) })
		for _, k := range keys {
			f := cm.A.Fields[k]
			if f.Real && !f.IsMatched() {
				worklist = append(worklist, f)
				ownerOf[f] = cm.B
			}
		}
	}
	if len(worklist) == 0 {
		return false, nil
	}

	rankOne := func(f *model.Field) (*proposal[*model.Field], error) {
		cands := fieldCandidates(f, ownerOf[f])
		if len(cands) == 0 {
			return nil, nil
		}
		ranked, err := d.Framework.Fields.Rank(f, cands, level)
		if err != nil {
			return nil, &FeatureErrorContext{Cause: err, Level: level, AID: f.Name}
		}
		if len(ranked) == 0 || ranked[0].Score < absolute {
			return nil, nil
		}
		runnerUp := 0.0
		if len(ranked) > 1 {
			runnerUp = ranked[1].Score
		}
		if ranked[0].Score-runnerUp >= relative {
			d.store.ClearAmbiguousField(f)
			return &proposal[*model.Field]{from: f, to: ranked[0].Entity, score: ranked[0].Score}, nil
		}
		if level == model.Final {
			d.store.MarkAmbiguousField(f)
		}
		return nil, nil
	}

	pt := d.instrumentation.NewProgressTracker(level.String()+"-fields", len(worklist))
	proposals, err := rankConcurrently(ctx, worklist, d.parallelism(), pt, rankOne)
	if err != nil {
		return false, err
	}

	survivors := resolveProposals(proposals, relative, fieldSortKey)

	changed := false
	for _, p := range survivors {
		if p.from.IsMatched() || p.to.IsMatched() {
			continue
		}
		if err := d.store.CommitField(p.from, p.to, level, p.score); err != nil {
			continue
		}
		changed = true
	}
	return changed, nil
}
