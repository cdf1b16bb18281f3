package match

import (
	"fmt"
	"sort"
	"sync"

	"github.com/relabel/classmatch/pkg/model"
)

// Store is the bidirectional partial bijection between the named and
// unnamed images (spec.md §6). Rather than shadow the match state in its
// own maps, it commits directly onto the per-entity Match/MatchSimilarity/
// MatchLevel fields (pkg/model) that compare.* already reads, and adds on
// top of that the two things those fields cannot express on their own:
// a guard against overwriting a committed match, and the set of entities
// that were held back as ambiguous rather than committed.
type Store struct {
	mu sync.Mutex

	ambiguousClasses map[*model.Class]bool
	ambiguousMethods map[*model.Method]bool
	ambiguousFields  map[*model.Field]bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		ambiguousClasses: make(map[*model.Class]bool),
		ambiguousMethods: make(map[*model.Method]bool),
		ambiguousFields:  make(map[*model.Field]bool),
	}
}

// CommitClass records a↔b as matched at level with the given similarity.
// Matches are monotonic: once committed, a pair is never revoked or
// overwritten within a run (spec.md §4.3).
func (s *Store) CommitClass(a, b *model.Class, level model.Level, similarity float64) error {
	if a.IsMatched() || b.IsMatched() {
		return fmt.Errorf("cannot commit class pair %s/%s: already matched", a.ID, b.ID)
	}
	a.Match, b.Match = b, a
	a.MatchSimilarity, b.MatchSimilarity = similarity, similarity
	a.MatchLevel, b.MatchLevel = level, level
	return nil
}

// CommitMethod records a↔b as matched at level with the given similarity.
func (s *Store) CommitMethod(a, b *model.Method, level model.Level, similarity float64) error {
	if a.IsMatched() || b.IsMatched() {
		return fmt.Errorf("cannot commit method pair %s/%s: already matched", a.Name, b.Name)
	}
	a.Match, b.Match = b, a
	a.MatchSimilarity, b.MatchSimilarity = similarity, similarity
	a.MatchLevel, b.MatchLevel = level, level
	return nil
}

// CommitField records a↔b as matched at level with the given similarity.
func (s *Store) CommitField(a, b *model.Field, level model.Level, similarity float64) error {
	if a.IsMatched() || b.IsMatched() {
		return fmt.Errorf("cannot commit field pair %s/%s: already matched", a.Name, b.Name)
	}
	a.Match, b.Match = b, a
	a.MatchSimilarity, b.MatchSimilarity = similarity, similarity
	a.MatchLevel, b.MatchLevel = level, level
	return nil
}

// MarkAmbiguousClass records that a had a best candidate passing the
// absolute threshold whose margin over the runner-up never cleared the
// relative threshold by the FINAL level.
func (s *Store) MarkAmbiguousClass(a *model.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambiguousClasses[a] = true
}

func (s *Store) MarkAmbiguousMethod(a *model.Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambiguousMethods[a] = true
}

func (s *Store) MarkAmbiguousField(a *model.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambiguousFields[a] = true
}

// ClearAmbiguous* removes a from the ambiguous set once it has gone on to
// commit to some partner, since ambiguity at an earlier level does not
// survive a later successful commit.
func (s *Store) ClearAmbiguousClass(a *model.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ambiguousClasses, a)
}

func (s *Store) ClearAmbiguousMethod(a *model.Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ambiguousMethods, a)
}

func (s *Store) ClearAmbiguousField(a *model.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ambiguousFields, a)
}

// IsAmbiguousClass reports whether a is currently held back as ambiguous.
func (s *Store) IsAmbiguousClass(a *model.Class) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambiguousClasses[a]
}

func (s *Store) IsAmbiguousMethod(a *model.Method) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambiguousMethods[a]
}

func (s *Store) IsAmbiguousField(a *model.Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambiguousFields[a]
}

// AmbiguousClasses returns the still-unmatched, still-ambiguous classes of
// the named image, sorted by ID for determinism.
func (s *Store) AmbiguousClasses() []*model.Class {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Class, 0, len(s.ambiguousClasses))
	for c := range s.ambiguousClasses {
		if !c.IsMatched() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AmbiguousMethods returns the still-unmatched, still-ambiguous methods of
// the named image, sorted by key for determinism.
func (s *Store) AmbiguousMethods() []*model.Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Method, 0, len(s.ambiguousMethods))
	for m := range s.ambiguousMethods {
		if !m.IsMatched() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return methodSortKey(out[i]) < methodSortKey(out[j]) })
	return out
}

// AmbiguousFields returns the still-unmatched, still-ambiguous fields of
// the named image, sorted by key for determinism.
func (s *Store) AmbiguousFields() []*model.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Field, 0, len(s.ambiguousFields))
	for f := range s.ambiguousFields {
		if !f.IsMatched() {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return fieldSortKey(out[i]) < fieldSortKey(out[j]) })
	return out
}

func fieldSortKey(f *model.Field) string {
	owner := "?"
	if f.Owner != nil {
		owner = f.Owner.ID
	}
	typ := "?"
	if f.Type != nil {
		typ = f.Type.ID
	}
	return owner + "." + f.Name + ":" + typ
}

// ClassMatch is one committed class pair with its provenance.
type ClassMatch struct {
	A, B       *model.Class
	Level      model.Level
	Similarity float64
}

// MethodMatch is one committed method pair with its provenance.
type MethodMatch struct {
	A, B       *model.Method
	Level      model.Level
	Similarity float64
}

// FieldMatch is one committed field pair with its provenance.
type FieldMatch struct {
	A, B       *model.Field
	Level      model.Level
	Similarity float64
}

// MatchedClasses returns every committed class pair anchored on named,
// sorted by A.ID for determinism.
func MatchedClasses(named *model.Image) []ClassMatch {
	var out []ClassMatch
	for _, c := range named.RealClasses() {
		if c.Match != nil {
			out = append(out, ClassMatch{A: c, B: c.Match, Level: c.MatchLevel, Similarity: c.MatchSimilarity})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].A.ID < out[j].A.ID })
	return out
}

// MatchedMethods returns every committed method pair whose owner class is
// itself matched, anchored on named, sorted for determinism.
func MatchedMethods(named *model.Image) []MethodMatch {
	var out []MethodMatch
	for _, c := range named.RealClasses() {
		for _, m := range c.MethodOrder {
			if m.Match != nil {
				out = append(out, MethodMatch{A: m, B: m.Match, Level: m.MatchLevel, Similarity: m.MatchSimilarity})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return methodSortKey(out[i].A) < methodSortKey(out[j].A) })
	return out
}

// MatchedFields returns every committed field pair whose owner class is
// itself matched, anchored on named, sorted for determinism.
func MatchedFields(named *model.Image) []FieldMatch {
	var out []FieldMatch
	for _, c := range named.RealClasses() {
		keys := make([]model.FieldKey, 0, len(c.Fields))
		for k := range c.Fields {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fieldKeyLess(keys[i], keys[j]) })
		for _, k := range keys {
			f := c.Fields[k]
			if f.Match != nil {
				out = append(out, FieldMatch{A: f, B: f.Match, Level: f.MatchLevel, Similarity: f.MatchSimilarity})
			}
		}
	}
	return out
}

func methodSortKey(m *model.Method) string {
	owner := "?"
	if m.Owner != nil {
		owner = m.Owner.ID
	}
	return owner + "." + m.Name + m.Descriptor.String()
}

func fieldKeyLess(a, b model.FieldKey) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Type < b.Type
}
