package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

func TestGPA(t *testing.T) {
	assert.Equal(t, 0.0, GPA(nil))
	assert.Equal(t, 3.25, GPA([]models.GradeLetter{"A", "B", "C", "A"}))
	assert.Equal(t, 3.0, GPA([]models.GradeLetter{"A", "B", "C", "B"}))
	assert.Equal(t, 2.0, GPA([]models.GradeLetter{"a", "Z"}))
}

func TestCourseStats(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	stats := CourseStats(9, []models.GradeDetail{
		{Grade: models.Grade{Grade: models.GradeA, NumericScore: score(95)}},
		{Grade: models.Grade{Grade: models.GradeC, NumericScore: score(72)}},
		{Grade: models.Grade{Grade: models.GradeF}},
	})

	assert.Equal(t, int64(9), stats.CourseID)
	assert.Equal(t, 3, stats.GradeCount)
	assert.Equal(t, 83.5, stats.AverageScore)
	assert.Equal(t, 2.0, stats.AveragePoints)
	assert.Equal(t, 66.67, stats.PassRate)
	assert.Equal(t, 1, stats.Distribution[models.GradeF])
	assert.Equal(t, 0, stats.Distribution[models.GradeB])
}

func TestCourseStatsEmpty(t *testing.T) {
	stats := CourseStats(1, nil)
	assert.Zero(t, stats.PassRate)
	assert.Len(t, stats.Distribution, 5)
}

func TestSummarisePayments(t *testing.T) {
	summary := SummarisePayments([]models.PaymentStatusTotal{
		{Status: models.PaymentCompleted, Count: 2, Amount: 300},
		{Status: models.PaymentPartiallyRefunded, Count: 1, Amount: 100},
		{Status: models.PaymentPending, Count: 1, Amount: 80},
		{Status: models.PaymentFailed, Count: 1, Amount: 40},
	}, 25)

	assert.Equal(t, 5, summary.TotalCount)
	assert.Equal(t, 400.0, summary.GrossRevenue)
	assert.Equal(t, 375.0, summary.NetRevenue)
	assert.Equal(t, 80.0, summary.Pending)
	assert.Equal(t, 2, summary.ByStatus[models.PaymentCompleted].Count)
}

func TestMonthBuckets(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	buckets := MonthBuckets(now, 3, []models.DatedAmount{
		{At: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: 100},
		{At: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 50.255},
		{At: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Amount: 999},
	})

	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, "2024-02", buckets[1].Month)
	assert.Zero(t, buckets[1].Count)
	assert.Equal(t, "2024-03", buckets[2].Month)
	assert.InDelta(t, 50.26, buckets[2].Total, 0.01)
}

func TestMonthBucketsClampsWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Len(t, MonthBuckets(now, 0, nil), 6)
	assert.Len(t, MonthBuckets(now, 100, nil), 24)
	assert.Equal(t, "2022-04", MonthBuckets(now, 24, nil)[0].Month)
}

func TestGradeDistribution(t *testing.T) {
	dist := GradeDistribution([]models.GradeLetter{"A", "A", "B", "F"})
	require.Len(t, dist, 5)
	assert.Equal(t, models.GradeA, dist[0].Grade)
	assert.Equal(t, 2, dist[0].Count)
	assert.Equal(t, 50.0, dist[0].Percentage)
	assert.Equal(t, 25.0, dist[4].Percentage)
}
