// Package pipeline provides the core diagram generation pipeline.
//
// This package implements the complete parse → analyze → layout →
// refine → export flow used by every CLI entry point. Centralizing it
// keeps behavior identical whether a diagram comes from a file, stdin,
// or the file watcher.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: text definition → entity/relationship model
//  2. Analyze: classify connectivity and recommend a layout strategy
//  3. Layout: compute positions, then refine them
//  4. Export: assemble the positioned JSON document
//
// Parsing is cheap and layout is not, so caching operates on the final
// positioned document, keyed by source hash and layout parameters.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Source: text})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := canvas.Marshal(result.Document)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for Every Entry Point
// =============================================================================

const (
	// DefaultWidth is the default canvas width.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// StrategyAuto selects the analyzer's recommendation.
	StrategyAuto = "auto"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation run.
type Options struct {
	// Source is the diagram definition text.
	Source string `json:"source"`

	// Strategy overrides the analyzer's recommendation when not "auto".
	Strategy string `json:"strategy,omitempty"`

	// Canvas dimensions.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Seed for the force simulation.
	Seed int64 `json:"seed,omitempty"`

	// SkipRefine leaves raw strategy output unpolished.
	SkipRefine bool `json:"skip_refine,omitempty"`

	// Refresh bypasses the cache and regenerates.
	Refresh bool `json:"refresh,omitempty"`

	// Tuning overrides the layout defaults when non-nil.
	Tuning *layout.Config `json:"-"`

	// Logger for stage progress. Discarded when nil.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent: calling it repeatedly has the effect of calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Strategy == "" {
		o.Strategy = StrategyAuto
	}
	if o.Strategy != StrategyAuto {
		if _, ok := analyze.ParseStrategy(o.Strategy); !ok {
			return errors.New(errors.ErrCodeInvalidStrategy,
				"unknown layout strategy %q", o.Strategy)
		}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// layoutConfig builds the effective layout tuning for this run.
func (o *Options) layoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	if o.Tuning != nil {
		cfg = *o.Tuning
	}
	cfg.CanvasWidth = o.Width
	cfg.CanvasHeight = o.Height
	cfg.Seed = o.Seed
	return cfg
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed model.
	Diagram *er.Diagram

	// Analysis is the connectivity classification. Nil on cache hits,
	// where analysis never ran.
	Analysis *analyze.Analysis

	// Strategy is the layout strategy that produced the positions.
	Strategy string

	// Positions maps entity names to refined canvas positions.
	Positions layout.PositionMap

	// Document is the positioned export, ready for serialization.
	Document *canvas.Document

	// SourceHash is the content hash of the definition text.
	SourceHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the document came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount       int
	RelationshipCount int
	ParseTime         time.Duration
	AnalyzeTime       time.Duration
	LayoutTime        time.Duration
}

// CacheInfo tracks cache participation for a run.
type CacheInfo struct {
	Hit bool // Whether the document came from cache
}
