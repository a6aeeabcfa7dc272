package cataloginfra

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	skills    []string
	locations []string
	err       error
	calls     int
}

func (s *stubSource) JobSkills(ctx context.Context) ([]string, error) {
	s.calls++
	return s.skills, s.err
}

func (s *stubSource) JobLocations(ctx context.Context) ([]string, error) {
	s.calls++
	return s.locations, s.err
}

func TestNewCachingSourceDefaults(t *testing.T) {
	src := NewCachingSource(nil, 0, &stubSource{})
	assert.Equal(t, 5*time.Minute, src.ttl)
	assert.Equal(t, "catalog", src.namespace)

	src = NewCachingSource(nil, time.Minute, &stubSource{})
	assert.Equal(t, time.Minute, src.ttl)
}

func TestCachingSourceNilRedisBypassesCache(t *testing.T) {
	inner := &stubSource{skills: []string{"Go"}}
	src := NewCachingSource(nil, time.Minute, inner)

	for range 2 {
		skills, err := src.JobSkills(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, skills)
	}
	assert.Equal(t, 2, inner.calls)
}

func TestCachingSourceServesSecondReadFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &stubSource{locations: []string{"Berlin", "Dhaka"}}
	src := NewCachingSource(rdb, time.Minute, inner)

	first, err := src.JobLocations(context.Background())
	require.NoError(t, err)
	second, err := src.JobLocations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, mr.Exists("catalog:locations"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("catalog:locations"))

	_, err = src.JobLocations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingSourceMissStoresValue(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	skills := []string{"Go", "Rust"}
	payload, _ := json.Marshal(skills)

	mock.ExpectGet("catalog:skills").RedisNil()
	mock.ExpectSet("catalog:skills", payload, 5*time.Minute).SetVal("OK")

	src := NewCachingSource(rdb, 0, &stubSource{skills: skills})
	got, err := src.JobSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, skills, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingSourceDropsCorruptedEntry(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	skills := []string{"Go"}
	payload, _ := json.Marshal(skills)

	mock.ExpectGet("catalog:skills").SetVal("not json")
	mock.ExpectDel("catalog:skills").SetVal(1)
	mock.ExpectSet("catalog:skills", payload, 5*time.Minute).SetVal("OK")

	inner := &stubSource{skills: skills}
	src := NewCachingSource(rdb, 0, inner)
	got, err := src.JobSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, skills, got)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingSourceFallsThroughOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	skills := []string{"Go"}
	payload, _ := json.Marshal(skills)

	mock.ExpectGet("catalog:skills").SetErr(errors.New("connection refused"))
	mock.ExpectSet("catalog:skills", payload, 5*time.Minute).SetErr(errors.New("connection refused"))

	src := NewCachingSource(rdb, 0, &stubSource{skills: skills})
	got, err := src.JobSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, skills, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingSourceDoesNotCacheErrors(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("catalog:locations").RedisNil()

	boom := errors.New("db down")
	src := NewCachingSource(rdb, 0, &stubSource{err: boom})
	_, err := src.JobLocations(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
