package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/cache"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er/parse"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → analyze → layout → export pipeline
// with document caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{
		SourceHash: cache.Hash([]byte(opts.Source)),
	}

	// Stage 1: Parse. Always runs - the model is part of the result
	// even on cache hits, and parse errors must surface regardless of
	// cache state.
	parseStart := time.Now()
	d, err := parse.Parse(opts.Source)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.EntityCount = len(d.Entities)
	result.Stats.RelationshipCount = len(d.Relationships)

	logger.Info("parsed diagram",
		"entities", len(d.Entities),
		"relationships", len(d.Relationships),
		"duration", result.Stats.ParseTime)

	// Tuning changes positions without changing DocumentKeyOpts, so a
	// tuned run must never share cache entries with a default run.
	keyer := r.Keyer
	if opts.Tuning != nil {
		keyer = cache.NewScopedKeyer(keyer, tuningScope(opts.Tuning))
	}
	cacheKey := keyer.DocumentKey(result.SourceHash, cache.DocumentKeyOpts{
		Strategy: opts.Strategy,
		Width:    opts.Width,
		Height:   opts.Height,
		Seed:     opts.Seed,
	})

	if !opts.Refresh {
		if doc, ok := r.cachedDocument(ctx, cacheKey); ok {
			result.Document = doc
			result.Strategy = opts.Strategy
			result.Positions = documentPositions(doc)
			result.CacheInfo.Hit = true
			logger.Info("loaded document from cache", "key", cacheKey[:16])
			return result, nil
		}
	}

	// Stage 2: Analyze.
	analyzeStart := time.Now()
	a := analyze.Analyze(d)
	result.Analysis = a
	result.Stats.AnalyzeTime = time.Since(analyzeStart)

	logger.Info("analyzed topology",
		"pattern", a.Pattern,
		"strategy", a.Strategy,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Layout and refine.
	layoutStart := time.Now()
	strategy := a.Strategy
	if opts.Strategy != StrategyAuto {
		strategy, _ = analyze.ParseStrategy(opts.Strategy)
	}
	engine := layout.New(opts.layoutConfig())
	positions := engine.LayoutStrategy(ctx, d, a, strategy)
	if !opts.SkipRefine {
		positions = layout.Refine(positions, d, engine.Config())
	}
	result.Positions = positions
	result.Strategy = string(strategy)
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"strategy", strategy,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Export.
	result.Document = canvas.FromDiagram(d, positions, opts.Width, opts.Height)

	if data, err := canvas.Marshal(result.Document); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
	}
	return result, nil
}

// Serialize runs the inverse pipeline: positioned document → model.
// It lives here so callers deal with one package for both directions.
func (r *Runner) Serialize(doc *canvas.Document) (*er.Diagram, layout.PositionMap, error) {
	d, positions, err := doc.ToDiagram()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "importing document")
	}
	return d, positions, nil
}

func (r *Runner) cachedDocument(ctx context.Context, key string) (*canvas.Document, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	doc, err := canvas.Unmarshal(data)
	if err != nil {
		// Corrupt payload: drop it and regenerate.
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return doc, true
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// tuningScope fingerprints a layout override into a cache key prefix.
func tuningScope(cfg *layout.Config) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "tuned:"
	}
	return "tuned:" + cache.Hash(data)[:16] + ":"
}

func documentPositions(doc *canvas.Document) layout.PositionMap {
	pm := make(layout.PositionMap, len(doc.Entities))
	for _, ent := range doc.Entities {
		pm[ent.Name] = er.Point{X: ent.X, Y: ent.Y}
	}
	return pm
}
