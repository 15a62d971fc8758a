package payroll

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryCache_RoundTrip(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSalaryCache(rdb, time.Minute)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	key := salaryCacheKey(testSchool, testTeacher, from, to)

	result := SalaryResult{TeacherID: testTeacher, TotalSalary: 172}
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectSet(key, raw, time.Minute).SetVal("OK")
	cache.Set(context.Background(), key, result)

	mock.ExpectGet(key).SetVal(string(raw))
	got, ok := cache.Get(context.Background(), key)
	require.True(t, ok)
	assert.Equal(t, 172.0, got.TotalSalary)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryCache_MissAndCorruptEntry(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSalaryCache(rdb, time.Minute)

	mock.ExpectGet("salary:miss").RedisNil()
	_, ok := cache.Get(context.Background(), "salary:miss")
	assert.False(t, ok)

	mock.ExpectGet("salary:corrupt").SetVal("{not json")
	_, ok = cache.Get(context.Background(), "salary:corrupt")
	assert.False(t, ok)
}

func TestSalaryCache_NilSafe(t *testing.T) {
	var cache *SalaryCache

	_, ok := cache.Get(context.Background(), "any")
	assert.False(t, ok)
	cache.Set(context.Background(), "any", SalaryResult{})
	cache.Invalidate(context.Background(), testSchool, testTeacher)
}

func TestSalaryCache_InvalidateSchoolScansAllTeachers(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSalaryCache(rdb, time.Minute)

	pattern := "salary:" + testSchool + ":*"
	keys := []string{
		"salary:" + testSchool + ":" + testTeacher + ":2025-03-01:2025-03-31",
		"salary:" + testSchool + ":" + testAdmin + ":2025-03-01:2025-03-31",
	}
	mock.ExpectScan(0, pattern, 100).SetVal(keys, 0)
	for _, k := range keys {
		mock.ExpectDel(k).SetVal(1)
	}

	cache.InvalidateSchool(context.Background(), testSchool)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryCache_InvalidateScansTeacherKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSalaryCache(rdb, time.Minute)

	pattern := "salary:" + testSchool + ":" + testTeacher + ":*"
	keys := []string{
		"salary:" + testSchool + ":" + testTeacher + ":2025-03-01:2025-03-31",
		"salary:" + testSchool + ":" + testTeacher + ":2025-04-01:2025-04-30",
	}
	mock.ExpectScan(0, pattern, 100).SetVal(keys, 0)
	for _, k := range keys {
		mock.ExpectDel(k).SetVal(1)
	}

	cache.Invalidate(context.Background(), testSchool, testTeacher)
	require.NoError(t, mock.ExpectationsWereMet())
}
