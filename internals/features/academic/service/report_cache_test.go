package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academic_backend/internals/features/academic/model"
)

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisReportCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisReportCache(rdb, time.Minute)
}

func TestReportCardScenario(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.student(t, "Alice")
	physics, math := f.course(t, "Physics"), f.course(t, "Math")
	f.enroll(t, alice, physics)
	f.enroll(t, alice, math)
	f.grade(t, alice, math, 95, 85)
	f.grade(t, alice, physics, 70)

	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", card.Student)
	require.Len(t, card.Report, 2)

	assert.Equal(t, "Math", card.Report[0].Course)
	assert.Equal(t, []int{95, 85}, card.Report[0].Grades)
	assert.Equal(t, 90, card.Report[0].Average)
	assert.Equal(t, "A-", card.Report[0].Letter)

	assert.Equal(t, "Physics", card.Report[1].Course)
	assert.Equal(t, []int{70}, card.Report[1].Grades)
	assert.Equal(t, 70, card.Report[1].Average)
	assert.Equal(t, "C-", card.Report[1].Letter)
}

func TestReportCardEmptyAndUngraded(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.student(t, "Alice")

	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, card.Report)
	assert.Empty(t, card.Report)

	f.enroll(t, alice, f.course(t, "Art"))
	card, err = f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, card.Report, 1)
	assert.Equal(t, []int{}, card.Report[0].Grades)
	assert.Equal(t, 0, card.Report[0].Average)
	assert.Equal(t, "F", card.Report[0].Letter)
}

func TestReportCardServedFromCache(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice, math := f.student(t, "Alice"), f.course(t, "Math")
	e := f.enroll(t, alice, math)
	f.grade(t, alice, math, 90)

	_, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	require.True(t, mr.Exists(reportKey(alice.StudentID)))

	// same stamp, different payload: only a cache hit can return it
	entry, ok := cache.Get(f.ctx, alice.StudentID)
	require.True(t, ok)
	entry.Card.Student = "Alice (cached)"
	cache.Set(f.ctx, entry)

	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice (cached)", card.Student)

	// written behind the service's back, so the stamp moves on
	require.NoError(t, f.db.Create(&model.GradeModel{GradeEnrollmentID: e.EnrollmentID, GradeValue: 10}).Error)

	card, err = f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", card.Student)
	assert.Equal(t, []int{90, 10}, card.Report[0].Grades)
}

func TestReportCacheFailedInvalidationNotServed(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice, math := f.student(t, "Alice"), f.course(t, "Math")
	f.enroll(t, alice, math)
	f.grade(t, alice, math, 90)

	_, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)

	mr.SetError("LOADING transient")
	f.grade(t, alice, math, 70)
	mr.SetError("")
	require.True(t, mr.Exists(reportKey(alice.StudentID)), "entry survives the failed DEL")

	grades, err := f.svc.GetGrades(f.ctx, alice, math)
	require.NoError(t, err)
	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{90, 70}, grades)
	assert.Equal(t, grades, card.Report[0].Grades)
	assert.Equal(t, 80, card.Report[0].Average)
}

// racingCache lands a write between the card being built and stored.
type racingCache struct {
	*RedisReportCache
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, entry *CachedReport) {
	if fn := c.beforeSet; fn != nil {
		c.beforeSet = nil
		fn()
	}
	c.RedisReportCache.Set(ctx, entry)
}

func TestReportCacheWriteDuringRebuild(t *testing.T) {
	_, redisCache := newRedisCache(t)
	cache := &racingCache{RedisReportCache: redisCache}
	f := newFixture(t, cache)
	alice, math := f.student(t, "Alice"), f.course(t, "Math")
	f.enroll(t, alice, math)
	f.grade(t, alice, math, 90)

	cache.beforeSet = func() { f.grade(t, alice, math, 70) }
	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{90}, card.Report[0].Grades)

	card, err = f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{90, 70}, card.Report[0].Grades)
}

func TestReportCacheWriterWithoutCache(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice, math, art := f.student(t, "Alice"), f.course(t, "Math"), f.course(t, "Art")
	f.enroll(t, alice, math)

	_, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)

	// a second process sharing the store but not the cache
	other := NewGradingService(f.db, nil)
	_, err = other.AddGrade(f.ctx, alice, math, intPtr(88), nil)
	require.NoError(t, err)
	require.True(t, mr.Exists(reportKey(alice.StudentID)))

	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{88}, card.Report[0].Grades)

	_, err = other.Enroll(f.ctx, alice, art)
	require.NoError(t, err)
	card, err = f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, card.Report, 2)
	assert.Equal(t, "Art", card.Report[0].Course)
}

func TestReportCacheInvalidatedByWrites(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice, math := f.student(t, "Alice"), f.course(t, "Math")
	f.enroll(t, alice, math)

	_, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	require.True(t, mr.Exists(reportKey(alice.StudentID)))

	f.grade(t, alice, math, 80)
	assert.False(t, mr.Exists(reportKey(alice.StudentID)))

	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{80}, card.Report[0].Grades)

	require.NoError(t, f.svc.DeleteCourse(f.ctx, math))
	assert.False(t, mr.Exists(reportKey(alice.StudentID)))

	card, err = f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, card.Report)
}

func TestReportCacheTTL(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice := f.student(t, "Alice")

	_, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(reportKey(alice.StudentID)))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(reportKey(alice.StudentID)))
}

func TestReportCacheRedisDownFallsThrough(t *testing.T) {
	mr, cache := newRedisCache(t)
	f := newFixture(t, cache)
	alice, math := f.student(t, "Alice"), f.course(t, "Math")
	f.enroll(t, alice, math)
	mr.Close()

	f.grade(t, alice, math, 75)
	card, err := f.svc.GetReportCard(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int{75}, card.Report[0].Grades)
}
