package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Now supplies the run date. Defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Now:    time.Now,
	}
}

// Execute runs compose → render for f. A composition that is not ready is
// not an error: the result carries the reason and no artifacts.
func (r *Runner) Execute(ctx context.Context, f *exam.File, opts Options) (*Result, error) {
	if f == nil {
		f = &exam.File{Setup: exam.NewSetup()}
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	now := r.now()
	if opts.Date == "" {
		opts.Date = now.Format(dateLayout)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Compose
	composeStart := time.Now()
	res, err := r.Compose(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Compose = res
	result.Stats.ComposeTime = time.Since(composeStart)

	if !res.Ready {
		opts.Logger.Info("nothing to render", "kind", opts.Kind, "reason", res.Reason)
		return result, nil
	}

	result.Stats.Pages = res.Document.PageCount()
	result.Stats.Rooms = len(f.Setup.Rooms)
	result.Stats.Students = f.Exam.StudentCount
	result.Stats.Overflows = res.Document.Overflows()
	for _, title := range result.Stats.Overflows {
		opts.Logger.Warn("section taller than a page", "section", title)
	}
	opts.Logger.Info("composed document",
		"kind", opts.Kind,
		"pages", result.Stats.Pages,
		"rooms", result.Stats.Rooms,
		"duration", result.Stats.ComposeTime)

	inputHash, err := hashInput(f, opts.Kind)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}
	result.InputHash = inputHash

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, res, inputHash, now, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose builds the document for f without rendering it.
func (r *Runner) Compose(ctx context.Context, f *exam.File, opts Options) (compose.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return compose.Result{}, err
	}
	if f == nil {
		f = &exam.File{Setup: exam.NewSetup()}
	}
	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, string(opts.Kind))

	c := compose.New(opts.PageOptions())
	c.Now = r.now

	start := time.Now()
	res, err := c.Compose(opts.Kind, f)
	took := time.Since(start)

	hooks.OnComposeComplete(ctx, string(opts.Kind), res.Document.PageCount(), took, err)
	return res, err
}

// RenderWithCacheInfo renders res in every requested format, serving what it
// can from the cache. It returns the formats that were cache hits. Cache
// failures are logged and otherwise ignored.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res compose.Result, inputHash string, created time.Time, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(res, missing, created, opts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, hits, nil
}

// Preview composes f and returns its JSON preview: the whole
// [compose.Result] including the nested seat plan or roster. Previews are
// cached under the keyer's preview key; the boolean reports a cache hit.
func (r *Runner) Preview(ctx context.Context, f *exam.File, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if f == nil {
		f = &exam.File{Setup: exam.NewSetup()}
	}

	inputHash, err := hashInput(f, opts.Kind)
	if err != nil {
		return nil, false, fmt.Errorf("hash input: %w", err)
	}
	key := r.Keyer.PreviewKey(inputHash, string(opts.Kind), r.now().Format(dateLayout))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "key", "preview", "err", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "preview")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "preview")
	}

	res, err := r.Compose(ctx, f, opts)
	if err != nil {
		return nil, false, fmt.Errorf("compose: %w", err)
	}
	data, err := sink.RenderJSON(res)
	if err != nil {
		return nil, false, err
	}

	// Not-ready previews are cheap and depend on nothing but the reason.
	if res.Ready {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", "preview", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "preview", len(data))
		}
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashInput hashes the normalized input. Setup defaults are resolved first,
// so an absent column count and an explicit 6 share cache entries.
func hashInput(f *exam.File, kind compose.Kind) (string, error) {
	setup := f.Setup
	setup.ColumnsPerRoom = setup.Columns()
	setup.Style = setup.EffectiveStyle()
	in := struct {
		Kind        compose.Kind     `json:"kind"`
		Exam        *exam.Record     `json:"exam"`
		Setup       exam.Setup       `json:"setup"`
		Supervision exam.Supervision `json:"supervision"`
	}{kind, f.Exam, setup, f.Supervision}
	return cache.HashJSON(in)
}
