package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"ui-design-gallery/metrics"
	"ui-design-gallery/repository"
)

const (
	pendingViewsKey  = "views:pending"
	flushingViewsKey = "views:flushing"
)

// ViewRecorder counts design views
type ViewRecorder interface {
	// Record counts one view. It returns the stored view count when known, or -1 when buffered.
	Record(ctx context.Context, designID int64) (int, error)
}

// DirectViewRecorder writes every view straight to Postgres
type DirectViewRecorder struct {
	designs repository.DesignRepositoryInterface
}

// NewDirectViewRecorder creates a new DirectViewRecorder
func NewDirectViewRecorder(designs repository.DesignRepositoryInterface) *DirectViewRecorder {
	return &DirectViewRecorder{designs: designs}
}

// Record increments the view counter in the database
func (r *DirectViewRecorder) Record(ctx context.Context, designID int64) (int, error) {
	return r.designs.IncrementViews(ctx, designID, 1)
}

// ViewBuffer accumulates view increments in a Redis hash and flushes them to Postgres in batches
type ViewBuffer struct {
	rdb     *redis.Client
	designs repository.DesignRepositoryInterface
}

// NewViewBuffer creates a new ViewBuffer
func NewViewBuffer(rdb *redis.Client, designs repository.DesignRepositoryInterface) *ViewBuffer {
	return &ViewBuffer{rdb: rdb, designs: designs}
}

var (
	_ ViewRecorder = (*DirectViewRecorder)(nil)
	_ ViewRecorder = (*ViewBuffer)(nil)
)

// Record buffers one view in Redis. When Redis is unavailable the view goes to the database.
func (b *ViewBuffer) Record(ctx context.Context, designID int64) (int, error) {
	field := strconv.FormatInt(designID, 10)
	if err := b.rdb.HIncrBy(ctx, pendingViewsKey, field, 1).Err(); err != nil {
		log.Printf("⚠️  Redis HINCRBY failed for design %d, writing view directly: %v", designID, err)
		return b.designs.IncrementViews(ctx, designID, 1)
	}
	return -1, nil
}

// Flush moves every pending increment into designs.views and returns the number of views written.
// The pending hash is renamed first so views recorded during the flush land in a fresh hash.
func (b *ViewBuffer) Flush(ctx context.Context) (int, error) {
	// A leftover flushing hash means a previous flush failed midway; finish it before taking a new batch
	exists, err := b.rdb.Exists(ctx, flushingViewsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check flushing views: %w", err)
	}

	if exists == 0 {
		if err := b.rdb.Rename(ctx, pendingViewsKey, flushingViewsKey).Err(); err != nil {
			if strings.Contains(err.Error(), "no such key") {
				return 0, nil
			}
			return 0, fmt.Errorf("failed to rotate pending views: %w", err)
		}
	}

	counts, err := b.rdb.HGetAll(ctx, flushingViewsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read pending views: %w", err)
	}

	flushed := 0
	for field, raw := range counts {
		designID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			log.Printf("⚠️  Dropping invalid view buffer field %q", field)
			b.rdb.HDel(ctx, flushingViewsKey, field)
			continue
		}
		delta, err := strconv.Atoi(raw)
		if err != nil || delta <= 0 {
			b.rdb.HDel(ctx, flushingViewsKey, field)
			continue
		}

		if _, err := b.designs.IncrementViews(ctx, designID, delta); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				b.rdb.HDel(ctx, flushingViewsKey, field)
				continue
			}
			log.Printf("❌ Error flushing %d views for design %d: %v", delta, designID, err)
			continue
		}
		b.rdb.HDel(ctx, flushingViewsKey, field)
		flushed += delta
	}

	metrics.ViewsFlushed.Add(float64(flushed))
	if err := b.requeueLeftovers(ctx); err != nil {
		return flushed, err
	}

	if flushed > 0 {
		log.Printf("💾 Flushed %d buffered views for %d designs", flushed, len(counts))
	}
	return flushed, nil
}

// requeueLeftovers moves fields still in the flushing hash back to the pending hash.
// Each field is moved in a MULTI block; anything not moved stays in the flushing hash
// and is picked up by the next Flush.
func (b *ViewBuffer) requeueLeftovers(ctx context.Context) error {
	left, err := b.rdb.HGetAll(ctx, flushingViewsKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read leftover views: %w", err)
	}

	for field, raw := range left {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			b.rdb.HDel(ctx, flushingViewsKey, field)
			continue
		}
		_, err = b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HIncrBy(ctx, pendingViewsKey, field, n)
			pipe.HDel(ctx, flushingViewsKey, field)
			return nil
		})
		if err != nil {
			log.Printf("❌ Error requeueing %d views for design %s: %v", n, field, err)
			return fmt.Errorf("failed to requeue views: %w", err)
		}
	}
	if len(left) > 0 {
		log.Printf("🔄 Requeued views for %d designs", len(left))
	}
	return nil
}
