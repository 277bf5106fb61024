// Package driver discovers files, parses them, dispatches the enabled rules
// and collects diagnostics. It also runs fix passes.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vantalint/internal/diag"
	"vantalint/internal/graphql"
	"vantalint/internal/lint"
	"vantalint/internal/observ"
	"vantalint/internal/source"
	"vantalint/internal/tsast"
	"vantalint/internal/version"
)

// Options configures a lint run.
type Options struct {
	// Paths are files or directories to lint.
	Paths   []string
	Exclude []string
	// SchemaPaths are SDL files or directories merged into the schema
	// passed to schema-aware rules.
	SchemaPaths []string
	Rules       *RuleSet
	// Jobs bounds the worker pool; <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// Cache, when non-nil, is consulted before parsing each file.
	Cache    *DiskCache
	Progress ProgressSink
	Logger   *zap.Logger
	BaseDir  string
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Lang   lint.Language
	Bag    *diag.Bag
	Cached bool
	// Loaded is false when the file could not be read.
	Loaded bool
}

// Result is the outcome of a lint run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Schema  *ast.Schema
	Timer   *observ.Timer
}

// Diagnostics returns every diagnostic of the run, ordered by file.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			out = append(out, r.Files[i].Bag.Items()...)
		}
	}
	return out
}

// Count returns the number of diagnostics at or above sev.
func (r *Result) Count(sev diag.Severity) int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			n += r.Files[i].Bag.Count(sev)
		}
	}
	return n
}

// Paths returns the linted file paths in order.
func (r *Result) Paths() []string {
	out := make([]string, len(r.Files))
	for i := range r.Files {
		out[i] = r.Files[i].Path
	}
	return out
}

// Lint runs the enabled rules over every discovered file.
func Lint(ctx context.Context, opts *Options) (*Result, error) {
	if opts == nil || opts.Rules == nil {
		return nil, fmt.Errorf("driver: missing rule set")
	}
	log := observ.OrNop(opts.Logger)
	timer := observ.NewTimer()

	idx := timer.Begin("discover")
	files, err := Discover(opts.Paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	log.Debug("discovered files", zap.Int("count", len(files)))

	idx = timer.Begin("schema")
	schema, schemaHash, err := loadSchema(opts.SchemaPaths)
	if err != nil {
		return nil, err
	}
	timer.End(idx, "")

	res := &Result{
		FileSet: source.NewFileSetWithBase(opts.BaseDir),
		Files:   make([]FileResult, len(files)),
		Schema:  schema,
		Timer:   timer,
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	// предзагрузка: FileSet выдаёт ID последовательно, порядок детерминирован
	idx = timer.Begin("load")
	for i, path := range files {
		res.Files[i] = FileResult{Path: path, Lang: LanguageOf(path), Bag: diag.NewBag(opts.MaxDiagnostics)}
		id, loadErr := res.FileSet.Load(path)
		if loadErr != nil {
			log.Warn("failed to load file", zap.String("file", path), zap.Error(loadErr))
			// пустая виртуальная версия, чтобы у диагностики был путь
			res.Files[i].FileID = res.FileSet.AddVirtual(path, nil)
			res.Files[i].Bag.Add(diag.NewError(diag.DrvLoadFileError, source.Span{File: res.Files[i].FileID}, "failed to load file: "+loadErr.Error()))
			continue
		}
		res.Files[i].FileID = id
		res.Files[i].Loaded = true
	}
	timer.End(idx, "")

	l := &linter{
		rules:      opts.Rules,
		ruleHash:   opts.Rules.Fingerprint(),
		schema:     schema,
		schemaHash: schemaHash,
		cache:      opts.Cache,
		log:        log,
		progress:   opts.Progress,
		maxDiags:   opts.MaxDiagnostics,
	}
	idx = timer.Begin("lint")
	err = l.run(ctx, res, opts.Jobs, allIndexes(len(res.Files)))
	timer.End(idx, fmt.Sprintf("%d rules", opts.Rules.Len()))
	if err != nil {
		return res, err
	}
	log.Debug("lint finished", append([]zap.Field{zap.Int("files", len(files))}, timer.Fields()...)...)
	return res, nil
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

type linter struct {
	rules      *RuleSet
	ruleHash   Digest
	schema     *ast.Schema
	schemaHash Digest
	cache      *DiskCache
	log        *zap.Logger
	progress   ProgressSink
	maxDiags   int
}

// run lints res.Files[i] for every i in which, in parallel. Results are
// stored by index (each worker owns its slot, no locking needed).
func (l *linter) run(ctx context.Context, res *Result, jobs int, which []int) error {
	if len(which) == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(which)))

	for _, i := range which {
		fr := &res.Files[i]
		if !fr.Loaded {
			emit(l.progress, Event{File: fr.Path, Stage: StageParse, Status: StatusError})
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			file := res.FileSet.Get(fr.FileID)
			bag, cached, err := l.lintFile(gctx, file, fr.Lang)
			if err != nil {
				emit(l.progress, Event{File: fr.Path, Stage: StageLint, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return fmt.Errorf("%s: %w", fr.Path, err)
			}
			fr.Bag = bag
			fr.Cached = cached
			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			emit(l.progress, Event{File: fr.Path, Stage: StageLint, Status: status, Cached: cached, Elapsed: time.Since(start)})
			return nil
		})
	}
	return g.Wait()
}

// lintFile produces the diagnostics of one file, from the cache when
// possible. The returned error is an internal failure, never a violation.
func (l *linter) lintFile(ctx context.Context, file *source.File, lang lint.Language) (*diag.Bag, bool, error) {
	key := cacheKey(version.Version, l.ruleHash, l.schemaHash, file.Path, file.Hash)
	if l.cache != nil {
		payload, ok, err := l.cache.Get(key, file.ID)
		switch {
		case err != nil:
			l.log.Debug("cache read failed", zap.String("file", file.Path), zap.Error(err))
		case ok:
			l.log.Debug("cache hit", zap.String("file", file.Path))
			return l.limited(payload.Diagnostics), true, nil
		default:
			l.log.Debug("cache miss", zap.String("file", file.Path))
		}
	}

	// полный список: лимит применяется только при сборке результата,
	// иначе кэш хранил бы усечённый набор
	bag := diag.NewBag(0)
	emit(l.progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	var err error
	switch lang {
	case lint.LangGraphQL:
		err = l.lintGraphQL(file, bag)
	case lint.LangTypeScript:
		err = l.lintTypeScript(ctx, file, bag)
	default:
		return nil, false, fmt.Errorf("unsupported file type")
	}
	if err != nil {
		return nil, false, err
	}
	bag.Sort()

	if l.cache != nil {
		payload := &DiskPayload{Path: file.Path, Diagnostics: bag.Items()}
		if err := l.cache.Put(key, payload); err != nil {
			l.log.Debug("cache write failed", zap.String("file", file.Path), zap.Error(err))
		}
	}
	return l.limited(bag.Items()), false, nil
}

// limited copies sorted diagnostics into a bag bounded by MaxDiagnostics;
// the rest are counted as dropped.
func (l *linter) limited(items []diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(l.maxDiags)
	for _, d := range items {
		bag.Add(d)
	}
	return bag
}

func (l *linter) lintGraphQL(file *source.File, bag *diag.Bag) error {
	active := l.rules.For(lint.LangGraphQL)
	if len(active) == 0 {
		return nil
	}
	doc, err := graphql.Parse(file)
	if err != nil {
		return reportSyntax(bag, file, err)
	}
	emit(l.progress, Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	reporter := diag.BagReporter{Bag: bag}
	for _, r := range active {
		rule := r.GraphQL
		pass := &graphql.Pass{
			Pass:   l.newPass(&rule.Meta, file, r.Severity, reporter),
			Doc:    doc,
			Schema: l.schema,
		}
		if err := rule.Run(pass); err != nil {
			if !lint.IsPrecondition(err) {
				return fmt.Errorf("rule %s: %w", rule.ID, err)
			}
			l.log.Warn("rule precondition failed",
				zap.String("file", file.Path),
				zap.String("rule", rule.ID),
				zap.Error(err))
			diag.ReportError(reporter, diag.DrvPrecondition, source.Span{File: file.ID}, err.Error()).
				WithRule(rule.ID).
				Emit()
		}
	}
	return nil
}

func (l *linter) lintTypeScript(ctx context.Context, file *source.File, bag *diag.Bag) error {
	active := l.rules.For(lint.LangTypeScript)
	if len(active) == 0 {
		return nil
	}
	tree, err := tsast.Parse(ctx, file)
	if err != nil {
		return reportSyntax(bag, file, err)
	}
	emit(l.progress, Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	reporter := diag.BagReporter{Bag: bag}
	for _, r := range active {
		rule := r.TypeScript
		rule.Run(&tsast.Pass{
			Pass: l.newPass(&rule.Meta, file, r.Severity, reporter),
			Tree: tree,
		})
	}
	return nil
}

func (l *linter) newPass(meta *lint.Meta, file *source.File, sev diag.Severity, r diag.Reporter) *lint.Pass {
	p := lint.NewPass(meta, file, sev, r)
	p.Log = l.log
	return p
}

// reportSyntax turns a parse failure into a VL9001 diagnostic. Other errors
// (cancellation, parser setup) are returned.
func reportSyntax(bag *diag.Bag, file *source.File, err error) error {
	var gqlErr *graphql.SyntaxError
	var tsErr *tsast.SyntaxError
	switch {
	case errors.As(err, &gqlErr):
		bag.Add(diag.NewError(diag.DrvSyntaxError, gqlErr.Span, gqlErr.Message))
	case errors.As(err, &tsErr):
		bag.Add(diag.NewError(diag.DrvSyntaxError, tsErr.Span, tsErr.Message))
	default:
		return err
	}
	return nil
}

// loadSchema merges the SDL under paths. The digest covers every file's
// path and content so edits invalidate cached results.
func loadSchema(paths []string) (*ast.Schema, Digest, error) {
	if len(paths) == 0 {
		return nil, Digest{}, nil
	}
	files, err := graphql.SchemaFiles(paths)
	if err != nil {
		return nil, Digest{}, err
	}
	if len(files) == 0 {
		return nil, Digest{}, fmt.Errorf("no schema files found under %v", paths)
	}
	sources := make([]*ast.Source, 0, len(files))
	parts := make([][]byte, 0, 2*len(files))
	for _, f := range files {
		// #nosec G304 -- schema paths come from config or flags
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, Digest{}, fmt.Errorf("read schema %s: %w", f, err)
		}
		sources = append(sources, &ast.Source{Name: f, Input: string(content)})
		parts = append(parts, []byte(f), content)
	}
	schema, err := graphql.LoadSchemaSources(sources...)
	if err != nil {
		return nil, Digest{}, err
	}
	return schema, combineDigest(parts...), nil
}
