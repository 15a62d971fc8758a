package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// SalaryCache keeps recently computed salary results in redis so repeated
// dashboard loads within a short window skip the full recomputation.
type SalaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSalaryCache(rdb *redis.Client, ttl time.Duration) *SalaryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SalaryCache{rdb: rdb, ttl: ttl}
}

func salaryCacheKey(schoolID, teacherID string, from, to time.Time) string {
	return fmt.Sprintf("salary:%s:%s:%s:%s",
		schoolID, teacherID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *SalaryCache) Get(ctx context.Context, key string) (SalaryResult, bool) {
	if c == nil || c.rdb == nil {
		return SalaryResult{}, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return SalaryResult{}, false
	}

	var result SalaryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return SalaryResult{}, false
	}
	return result, true
}

func (c *SalaryCache) Set(ctx context.Context, key string, result SalaryResult) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops every cached range for one teacher. Called after payment
// upserts and bonus changes so stale totals never reach the admin view.
func (c *SalaryCache) Invalidate(ctx context.Context, schoolID, teacherID string) {
	c.invalidatePattern(ctx, fmt.Sprintf("salary:%s:%s:*", schoolID, teacherID))
}

// InvalidateSchool drops every cached result for a school. Rate edits change
// the inputs of every teacher's salary at once, so the whole school flushes.
func (c *SalaryCache) InvalidateSchool(ctx context.Context, schoolID string) {
	c.invalidatePattern(ctx, fmt.Sprintf("salary:%s:*", schoolID))
}

func (c *SalaryCache) invalidatePattern(ctx context.Context, pattern string) {
	if c == nil || c.rdb == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
