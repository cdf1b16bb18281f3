// Package report builds the JSON summary of a completed matcher run:
// every committed pair grouped by entity kind with its level and
// similarity, the entities still held back as ambiguous, and aggregate
// counts. This mirrors the teacher's pkg/output.FBOMGenerator shape:
// build a plain document struct, then marshal it with an indenting
// json.Encoder to a file or stdout.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/relabel/classmatch/pkg/match"
	"github.com/relabel/classmatch/pkg/model"
	"github.com/relabel/classmatch/pkg/utils"
)

// ClassPair is one committed class match, named in the document instead
// of by pointer.
type ClassPair struct {
	Named      string  `json:"named"`
	Unnamed    string  `json:"unnamed"`
	Level      string  `json:"level"`
	Similarity float64 `json:"similarity"`
}

// MethodPair is one committed method match.
type MethodPair struct {
	Class      string  `json:"class"`
	Named      string  `json:"named"`
	Unnamed    string  `json:"unnamed"`
	Level      string  `json:"level"`
	Similarity float64 `json:"similarity"`
}

// FieldPair is one committed field match.
type FieldPair struct {
	Class      string  `json:"class"`
	Named      string  `json:"named"`
	Unnamed    string  `json:"unnamed"`
	Level      string  `json:"level"`
	Similarity float64 `json:"similarity"`
}

// Summary is the aggregate counts for one run.
type Summary struct {
	NamedClasses     int `json:"namedClasses"`
	MatchedClasses   int `json:"matchedClasses"`
	AmbiguousClasses int `json:"ambiguousClasses"`
	NamedMethods     int `json:"namedMethods"`
	MatchedMethods   int `json:"matchedMethods"`
	AmbiguousMethods int `json:"ambiguousMethods"`
	NamedFields      int `json:"namedFields"`
	MatchedFields    int `json:"matchedFields"`
	AmbiguousFields  int `json:"ambiguousFields"`
}

// Report is the complete document a matcher run produces.
type Report struct {
	RunID        string       `json:"runId"`
	NamedImage   string       `json:"namedImage"`
	UnnamedImage string       `json:"unnamedImage"`
	Classes      []ClassPair  `json:"classes"`
	Methods      []MethodPair `json:"methods"`
	Fields       []FieldPair  `json:"fields"`
	Ambiguous    Ambiguous    `json:"ambiguous"`
	Summary      Summary      `json:"summary"`
}

// Ambiguous lists the named-side entities held back rather than committed.
type Ambiguous struct {
	Classes []string `json:"classes"`
	Methods []string `json:"methods"`
	Fields  []string `json:"fields"`
}

// Build assembles a Report from the matcher's committed state. named and
// unnamed must be the same images the Driver ran against, and store must
// be the Store that Driver.Run returned. runID is included verbatim so a
// report can be correlated back to the driver's log lines.
func Build(named, unnamed *model.Image, store *match.Store, runID string) Report {
	classMatches := match.MatchedClasses(named)
	methodMatches := match.MatchedMethods(named)
	fieldMatches := match.MatchedFields(named)

	r := Report{
		RunID:        runID,
		NamedImage:   named.Name,
		UnnamedImage: unnamed.Name,
		Classes:      make([]ClassPair, 0, len(classMatches)),
		Methods:      make([]MethodPair, 0, len(methodMatches)),
		Fields:       make([]FieldPair, 0, len(fieldMatches)),
	}

	for _, cm := range classMatches {
		r.Classes = append(r.Classes, ClassPair{
			Named: cm.A.ID, Unnamed: cm.B.ID, Level: cm.Level.String(), Similarity: cm.Similarity,
		})
	}
	for _, mm := range methodMatches {
		r.Methods = append(r.Methods, MethodPair{
			Class: ownerID(mm.A.Owner), Named: mm.A.Name, Unnamed: mm.B.Name,
			Level: mm.Level.String(), Similarity: mm.Similarity,
		})
	}
	for _, fm := range fieldMatches {
		r.Fields = append(r.Fields, FieldPair{
			Class: ownerID(fm.A.Owner), Named: fm.A.Name, Unnamed: fm.B.Name,
			Level: fm.Level.String(), Similarity: fm.Similarity,
		})
	}

	for _, c := range store.AmbiguousClasses() {
		r.Ambiguous.Classes = append(r.Ambiguous.Classes, c.ID)
	}
	for _, m := range store.AmbiguousMethods() {
		r.Ambiguous.Methods = append(r.Ambiguous.Methods, ownerID(m.Owner)+"."+m.Name)
	}
	for _, f := range store.AmbiguousFields() {
		r.Ambiguous.Fields = append(r.Ambiguous.Fields, ownerID(f.Owner)+"."+f.Name)
	}

	namedClasses := named.RealClasses()
	r.Summary = Summary{
		NamedClasses:     len(namedClasses),
		MatchedClasses:   len(r.Classes),
		AmbiguousClasses: len(r.Ambiguous.Classes),
		NamedMethods:     countMethods(namedClasses),
		MatchedMethods:   len(r.Methods),
		AmbiguousMethods: len(r.Ambiguous.Methods),
		NamedFields:      countFields(namedClasses),
		MatchedFields:    len(r.Fields),
		AmbiguousFields:  len(r.Ambiguous.Fields),
	}

	return r
}

// WriteTo writes r as indented JSON to path, or to stdout if path is
// empty, mirroring the teacher's FBOMGenerator.Generate output handling.
func WriteTo(r Report, path string) error {
	if path == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	file, err := utils.SafeCreateFile(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "report written to: %s\n", path)
	return nil
}

func ownerID(c *model.Class) string {
	if c == nil {
		return "?"
	}
	return c.ID
}

func countMethods(classes []*model.Class) int {
	n := 0
	for _, c := range classes {
		n += len(c.Methods)
	}
	return n
}

func countFields(classes []*model.Class) int {
	n := 0
	for _, c := range classes {
		n += len(c.Fields)
	}
	return n
}
