package secard

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-secard/internal/cache"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one render runs at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing. Rendering is CPU bound, so more
	// workers than cores only adds scheduling overhead.
	MaxWorkers = 32
)

// Cache memoizes rendered fields. internal/cache.RedisStore implements it.
type Cache interface {
	Get(ctx context.Context, key string) (fields map[string]string, found bool, err error)
	Set(ctx context.Context, key string, fields map[string]string) error
}

// Compile-time interface check.
var _ Cache = (*cache.RedisStore)(nil)

// Job is one (card, sheet) pair to render.
type Job struct {
	Card     Record
	Sheet    Sheet
	Metadata Record
	Portrait *Portrait
}

// JobsFor returns a front and a back job for every card.
func JobsFor(cards []Record) []Job {
	jobs := make([]Job, 0, len(cards)*2)
	for _, card := range cards {
		jobs = append(jobs, Job{Card: card, Sheet: Front}, Job{Card: card, Sheet: Back})
	}
	return jobs
}

// ResolveWorkers determines the number of concurrent renders.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Workers returns the concurrency RenderAll uses.
func (r *Renderer) Workers() int {
	return r.workers
}

// RenderAll renders jobs concurrently and returns the cards in job order.
// The first failure cancels the remaining jobs.
func (r *Renderer) RenderAll(ctx context.Context, jobs []Job) ([]RenderedCard, error) {
	start := time.Now()
	out := make([]RenderedCard, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			card, err := r.renderJob(ctx, job)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			out[i] = card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("batch rendered",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", r.workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// renderJob renders one job, consulting the cache when configured.
func (r *Renderer) renderJob(ctx context.Context, job Job) (RenderedCard, error) {
	if r.cache == nil {
		return r.Render(job.Card, job.Sheet, r.jobOptions(job)...)
	}
	if !job.Sheet.Valid() {
		return RenderedCard{}, fmt.Errorf("%w: %d", ErrInvalidSheet, job.Sheet)
	}

	key := r.cacheKey(job)
	fields, found, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		r.log.Debug("cache hit", zap.String("code", job.Card.Code()), zap.Int("sheet", int(job.Sheet)))
		return assemble(job.Card, job.Sheet, fields, job.Portrait), nil
	}

	fields, err = r.derive(job.Card, job.Sheet, job.Metadata)
	if err != nil {
		return RenderedCard{}, err
	}
	if err := r.cache.Set(ctx, key, fields); err != nil {
		r.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return assemble(job.Card, job.Sheet, fields, job.Portrait), nil
}

func (r *Renderer) jobOptions(job Job) []RenderOption {
	opts := []RenderOption{WithMetadata(job.Metadata)}
	if job.Portrait != nil {
		opts = append(opts, WithPortrait(*job.Portrait))
	}
	return opts
}

// cacheKey covers everything the derived fields depend on: language,
// sheet, record and metadata. Portrait settings are applied after the cache.
func (r *Renderer) cacheKey(job Job) string {
	lang := r.language
	if lang == "" {
		lang = "en"
	}
	raw := job.Card.Raw()
	if job.Metadata.raw != nil {
		raw = append(raw, job.Metadata.raw...)
	}
	return cache.Key(r.cachePrefix, lang, raw, int(job.Sheet))
}
