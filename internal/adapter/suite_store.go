package adapter

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/winnow/internal/model"
)

// SuiteStore reads suite files and writes minimized selections back.
type SuiteStore interface {
	// Load reads one suite file.
	Load(ctx context.Context, path m.Path) (m.SuiteSource, error)
	// LoadAll reads every suite file under paths, at most threads at a time.
	// Directories contribute their *.yaml and *.yml files.
	LoadAll(ctx context.Context, paths []m.Path, threads int) ([]m.SuiteSource, error)
	// SaveSelection writes src, with its current attachments, into dir under
	// the same base name.
	SaveSelection(ctx context.Context, dir m.Path, src m.SuiteSource) (m.Path, error)
}

type yamlSuiteStore struct{}

// NewSuiteStore returns a SuiteStore for the YAML suite format.
func NewSuiteStore() SuiteStore {
	return &yamlSuiteStore{}
}

type suiteDoc struct {
	Suite   string      `yaml:"suite"`
	Mutants []mutantDoc `yaml:"mutants"`
	Tests   []testDoc   `yaml:"tests"`
}

type mutantDoc struct {
	ID          int    `yaml:"id"`
	Owner       string `yaml:"owner,omitempty"`
	Method      string `yaml:"method,omitempty"`
	Line        int    `yaml:"line,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type testDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name,omitempty"`
	Statements []statementDoc `yaml:"statements"`
	Goals      []goalDoc      `yaml:"goals,omitempty"`
	Assertions []assertionDoc `yaml:"assertions,omitempty"`
	Original   *runDoc        `yaml:"original,omitempty"`
	Mutants    map[int]runDoc `yaml:"mutants,omitempty"`
}

type statementDoc struct {
	Position int    `yaml:"position"`
	Kind     string `yaml:"kind"`
	Owner    string `yaml:"owner,omitempty"`
	Method   string `yaml:"method,omitempty"`
}

type goalDoc struct {
	Kind    string `yaml:"kind"`
	Owner   string `yaml:"owner,omitempty"`
	Method  string `yaml:"method,omitempty"`
	Line    int    `yaml:"line,omitempty"`
	Branch  int    `yaml:"branch,omitempty"`
	Outcome bool   `yaml:"outcome,omitempty"`
	Mutant  int    `yaml:"mutant,omitempty"`
	Detail  string `yaml:"detail,omitempty"`
}

type assertionDoc struct {
	ID        int       `yaml:"id"`
	Position  int       `yaml:"position"`
	Kind      string    `yaml:"kind"`
	Source    string    `yaml:"source"`
	Inspector string    `yaml:"inspector,omitempty"`
	Value     string    `yaml:"value"`
	Kills     []int     `yaml:"kills,omitempty"`
	Goals     []goalDoc `yaml:"goals,omitempty"`
}

type runDoc struct {
	Timeout   bool       `yaml:"timeout,omitempty"`
	Exception bool       `yaml:"exception,omitempty"`
	Touched   []int      `yaml:"touched,omitempty"`
	Traces    []traceDoc `yaml:"traces,omitempty"`
	Error     string     `yaml:"error,omitempty"`
}

type traceDoc struct {
	Observer string     `yaml:"observer"`
	Entries  []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	Position int    `yaml:"position"`
	Source   string `yaml:"source"`
	Key      string `yaml:"key,omitempty"`
	Value    string `yaml:"value"`
}

func (s *yamlSuiteStore) Load(ctx context.Context, path m.Path) (m.SuiteSource, error) {
	if err := ctx.Err(); err != nil {
		return m.SuiteSource{}, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		slog.Error("Failed to read suite file", "path", path, "error", err)
		return m.SuiteSource{}, fmt.Errorf("read suite %s: %w", path, err)
	}

	var doc suiteDoc

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		slog.Error("Failed to decode suite file", "path", path, "error", err)
		return m.SuiteSource{}, fmt.Errorf("decode suite %s: %w", path, err)
	}

	src, err := doc.toModel(path)
	if err != nil {
		slog.Error("Invalid suite file", "path", path, "error", err)
		return m.SuiteSource{}, fmt.Errorf("suite %s: %w", path, err)
	}

	return src, nil
}

func (s *yamlSuiteStore) LoadAll(ctx context.Context, paths []m.Path, threads int) ([]m.SuiteSource, error) {
	files, err := expandSuitePaths(paths)
	if err != nil {
		return nil, err
	}

	sources := make([]m.SuiteSource, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(threads)
	}

	for i, file := range files {
		group.Go(func() error {
			src, err := s.Load(groupCtx, file)
			if err != nil {
				return err
			}

			sources[i] = src

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return sources, nil
}

func (s *yamlSuiteStore) SaveSelection(ctx context.Context, dir m.Path, src m.SuiteSource) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("Failed to create output dir", "dir", dir, "error", err)
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := yaml.Marshal(fromModel(src))
	if err != nil {
		return "", fmt.Errorf("encode suite %s: %w", src.Suite.Name, err)
	}

	target := m.Path(filepath.Join(string(dir), filepath.Base(string(src.Path))))
	if err := os.WriteFile(string(target), data, 0o600); err != nil {
		slog.Error("Failed to write selection", "path", target, "error", err)
		return "", fmt.Errorf("write selection: %w", err)
	}

	return target, nil
}

func expandSuitePaths(paths []m.Path) ([]m.Path, error) {
	var files []m.Path

	for _, p := range paths {
		info, err := os.Stat(string(p))
		if err != nil {
			slog.Error("Failed to stat suite path", "path", p, "error", err)
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(string(p))
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", p, err)
		}

		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}

			files = append(files, m.Path(filepath.Join(string(p), e.Name())))
		}
	}

	return files, nil
}

func (d suiteDoc) toModel(path m.Path) (m.SuiteSource, error) {
	mutants := make([]m.Mutant, 0, len(d.Mutants))
	for _, md := range d.Mutants {
		mutants = append(mutants, m.Mutant{
			ID:          m.MutantID(md.ID),
			Location:    m.Location{Owner: md.Owner, Method: md.Method, Line: md.Line},
			Description: md.Description,
		})
	}

	registry := m.NewMutantRegistry(mutants...)
	recordings := make(map[m.TestID]m.Recording, len(d.Tests))
	tests := make([]*m.TestCase, 0, len(d.Tests))

	for _, td := range d.Tests {
		tc, rec, err := td.toModel(registry)
		if err != nil {
			return m.SuiteSource{}, err
		}

		tests = append(tests, tc)
		recordings[tc.ID] = rec
	}

	name := d.Suite
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(string(path)), filepath.Ext(string(path)))
	}

	suite, err := m.NewTestSuite(name, tests...)
	if err != nil {
		return m.SuiteSource{}, err
	}

	return m.SuiteSource{
		Path:       path,
		Suite:      suite,
		Registry:   registry,
		Recordings: recordings,
	}, nil
}

func (td testDoc) toModel(registry *m.MutantRegistry) (*m.TestCase, m.Recording, error) {
	if td.ID == "" {
		return nil, m.Recording{}, errors.New("test without id")
	}

	statements := make([]m.Statement, 0, len(td.Statements))
	for _, sd := range td.Statements {
		statements = append(statements, m.Statement{
			Position: sd.Position,
			Kind:     m.StatementKind(sd.Kind),
			Owner:    sd.Owner,
			Method:   sd.Method,
		})
	}

	goals, err := goalsToModel(td.Goals, registry)
	if err != nil {
		return nil, m.Recording{}, fmt.Errorf("test %s: %w", td.ID, err)
	}

	tc := m.NewTestCase(m.TestID(td.ID), td.Name, statements, goals)

	for _, ad := range td.Assertions {
		a := m.NewAssertion(m.AssertionID(ad.ID), ad.Position, m.AssertionKind(ad.Kind), ad.Source, ad.Inspector, ad.Value)

		for _, id := range ad.Kills {
			a.AddKilledMutant(m.MutantID(id))
		}

		related, err := goalsToModel(ad.Goals, registry)
		if err != nil {
			return nil, m.Recording{}, fmt.Errorf("test %s assertion %d: %w", td.ID, ad.ID, err)
		}

		for _, g := range related {
			a.AddRelatedGoal(g)
		}

		if err := tc.AddAssertion(a); err != nil {
			return nil, m.Recording{}, err
		}
	}

	rec := m.Recording{Mutants: make(map[m.MutantID]m.RecordedRun, len(td.Mutants))}

	if td.Original != nil {
		original := td.Original.toRun()
		rec.Original = &original

		if original.Err == "" {
			tc.SetLastResult(original.Result)
		}
	}

	for id, rd := range td.Mutants {
		rec.Mutants[m.MutantID(id)] = rd.toRun()
	}

	return tc, rec, nil
}

// goalsToModel converts goal documents. Mutation goals take the location of
// their target mutant when the document leaves it out.
func goalsToModel(docs []goalDoc, registry *m.MutantRegistry) ([]m.Goal, error) {
	goals := make([]m.Goal, 0, len(docs))

	for _, gd := range docs {
		kind := m.GoalKind(gd.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown goal kind %q", gd.Kind)
		}

		g := m.Goal{
			Kind:    kind,
			Owner:   gd.Owner,
			Method:  gd.Method,
			Line:    gd.Line,
			Branch:  gd.Branch,
			Outcome: gd.Outcome,
			Mutant:  m.MutantID(gd.Mutant),
			Detail:  gd.Detail,
		}

		if kind == m.GoalMutation {
			if mt, ok := registry.Lookup(g.Mutant); ok {
				g.Owner = cmp.Or(g.Owner, mt.Location.Owner)
				g.Method = cmp.Or(g.Method, mt.Location.Method)
				g.Line = cmp.Or(g.Line, mt.Location.Line)
			}
		}

		goals = append(goals, g)
	}

	return goals, nil
}

func (rd runDoc) toRun() m.RecordedRun {
	result := m.ExecutionResult{Timeout: rd.Timeout, Exception: rd.Exception}

	for _, id := range rd.Touched {
		result.TouchedMutants = append(result.TouchedMutants, m.MutantID(id))
	}

	for _, td := range rd.Traces {
		tr := m.Trace{Observer: td.Observer}
		for _, ed := range td.Entries {
			tr.Entries = append(tr.Entries, m.TraceEntry(ed))
		}

		result.Traces = append(result.Traces, tr)
	}

	return m.RecordedRun{Result: result, Err: rd.Error}
}

func runFromModel(run m.RecordedRun) runDoc {
	rd := runDoc{Timeout: run.Result.Timeout, Exception: run.Result.Exception, Error: run.Err}

	for _, id := range run.Result.TouchedMutants {
		rd.Touched = append(rd.Touched, int(id))
	}

	for _, tr := range run.Result.Traces {
		td := traceDoc{Observer: tr.Observer}
		for _, e := range tr.Entries {
			td.Entries = append(td.Entries, entryDoc(e))
		}

		rd.Traces = append(rd.Traces, td)
	}

	return rd
}

func goalsFromModel(goals []m.Goal) []goalDoc {
	docs := make([]goalDoc, 0, len(goals))
	for _, g := range goals {
		docs = append(docs, goalDoc{
			Kind:    string(g.Kind),
			Owner:   g.Owner,
			Method:  g.Method,
			Line:    g.Line,
			Branch:  g.Branch,
			Outcome: g.Outcome,
			Mutant:  int(g.Mutant),
			Detail:  g.Detail,
		})
	}

	return docs
}

func fromModel(src m.SuiteSource) suiteDoc {
	doc := suiteDoc{Suite: src.Suite.Name}

	for _, mt := range src.Registry.All() {
		doc.Mutants = append(doc.Mutants, mutantDoc{
			ID:          int(mt.ID),
			Owner:       mt.Location.Owner,
			Method:      mt.Location.Method,
			Line:        mt.Location.Line,
			Description: mt.Description,
		})
	}

	for _, tc := range src.Suite.Tests() {
		td := testDoc{ID: string(tc.ID), Name: tc.Name, Goals: goalsFromModel(tc.CoveredGoals())}

		for _, st := range tc.Statements() {
			td.Statements = append(td.Statements, statementDoc{
				Position: st.Position,
				Kind:     string(st.Kind),
				Owner:    st.Owner,
				Method:   st.Method,
			})
		}

		for _, a := range tc.Assertions() {
			kills := make([]int, 0, len(a.KilledMutants()))
			for _, id := range a.KilledMutants() {
				kills = append(kills, int(id))
			}

			sort.Ints(kills)

			td.Assertions = append(td.Assertions, assertionDoc{
				ID:        int(a.ID),
				Position:  a.Position,
				Kind:      string(a.Kind),
				Source:    a.Source,
				Inspector: a.Inspector,
				Value:     a.Value,
				Kills:     kills,
				Goals:     goalsFromModel(a.RelatedGoals()),
			})
		}

		if rec, ok := src.Recordings[tc.ID]; ok {
			if rec.Original != nil {
				original := runFromModel(*rec.Original)
				td.Original = &original
			}

			if len(rec.Mutants) > 0 {
				td.Mutants = make(map[int]runDoc, len(rec.Mutants))
				for id, run := range rec.Mutants {
					td.Mutants[int(id)] = runFromModel(run)
				}
			}
		}

		doc.Tests = append(doc.Tests, td)
	}

	return doc
}
