package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CachedReport pairs a rendered card with the stamp of the store state it
// was built from. A cached card is only served while its stamp still
// matches the store.
type CachedReport struct {
	Stamp ReportStamp `json:"stamp"`
	Card  *ReportCard `json:"card"`
}

// ReportCache holds rendered report cards between writes. Get/Set failures
// are logged and treated as a miss.
type ReportCache interface {
	Get(ctx context.Context, studentID uuid.UUID) (*CachedReport, bool)
	Set(ctx context.Context, entry *CachedReport)
	Invalidate(ctx context.Context, studentIDs ...uuid.UUID) error
}

type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, uuid.UUID) (*CachedReport, bool) { return nil, false }
func (NoopReportCache) Set(context.Context, *CachedReport)                   {}
func (NoopReportCache) Invalidate(context.Context, ...uuid.UUID) error       { return nil }

const reportKeyPrefix = "report:student:"

func reportKey(studentID uuid.UUID) string { return reportKeyPrefix + studentID.String() }

type RedisReportCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{Client: client, TTL: ttl}
}

func (c *RedisReportCache) Get(ctx context.Context, studentID uuid.UUID) (*CachedReport, bool) {
	raw, err := c.Client.Get(ctx, reportKey(studentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[REDIS] get report student=%s: %v", studentID, err)
		}
		return nil, false
	}
	var entry CachedReport
	if err := sonic.Unmarshal(raw, &entry); err != nil || entry.Card == nil {
		log.Printf("[REDIS] decode report student=%s: %v", studentID, err)
		return nil, false
	}
	return &entry, true
}

func (c *RedisReportCache) Set(ctx context.Context, entry *CachedReport) {
	raw, err := sonic.Marshal(entry)
	if err != nil {
		log.Printf("[REDIS] encode report student=%s: %v", entry.Card.StudentID, err)
		return
	}
	if err := c.Client.Set(ctx, reportKey(entry.Card.StudentID), raw, c.TTL).Err(); err != nil {
		log.Printf("[REDIS] set report student=%s: %v", entry.Card.StudentID, err)
	}
}

func (c *RedisReportCache) Invalidate(ctx context.Context, studentIDs ...uuid.UUID) error {
	if len(studentIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		keys = append(keys, reportKey(id))
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate reports (%d keys): %w", len(keys), err)
	}
	return nil
}
