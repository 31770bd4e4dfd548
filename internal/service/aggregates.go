package service

import (
	"math"
	"time"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// GPA averages grade points. An empty set scores 0.
func GPA(letters []models.GradeLetter) float64 {
	if len(letters) == 0 {
		return 0
	}
	var total float64
	for _, l := range letters {
		total += models.GradePoints(l)
	}
	return round2(total / float64(len(letters)))
}

// CourseStats summarises the grades of one course.
func CourseStats(courseID int64, grades []models.GradeDetail) models.CourseGradeStats {
	stats := models.CourseGradeStats{CourseID: courseID, GradeCount: len(grades), Distribution: make(map[models.GradeLetter]int, len(models.GradeLetters))}
	for _, l := range models.GradeLetters {
		stats.Distribution[l] = 0
	}
	if len(grades) == 0 {
		return stats
	}

	var (
		scoreSum  float64
		scored    int
		pointsSum float64
		passed    int
	)
	for _, g := range grades {
		stats.Distribution[g.Grade.Grade]++
		pointsSum += models.GradePoints(g.Grade.Grade)
		if g.Grade.Grade != models.GradeF {
			passed++
		}
		if g.NumericScore != nil {
			scoreSum += *g.NumericScore
			scored++
		}
	}
	if scored > 0 {
		stats.AverageScore = round2(scoreSum / float64(scored))
	}
	stats.AveragePoints = round2(pointsSum / float64(len(grades)))
	stats.PassRate = percentage(passed, len(grades))
	return stats
}

// SummarisePayments folds per-status totals into a revenue summary.
func SummarisePayments(totals []models.PaymentStatusTotal, refunded float64) models.PaymentSummary {
	summary := models.PaymentSummary{ByStatus: make(map[models.PaymentStatus]models.PaymentStatusTotal, len(totals))}
	for _, t := range totals {
		summary.ByStatus[t.Status] = t
		summary.TotalCount += t.Count
		switch t.Status {
		case models.PaymentCompleted, models.PaymentPartiallyRefunded, models.PaymentRefunded:
			summary.GrossRevenue += t.Amount
		case models.PaymentPending:
			summary.Pending += t.Amount
		}
	}
	summary.GrossRevenue = round2(summary.GrossRevenue)
	summary.TotalRefunded = round2(refunded)
	summary.NetRevenue = round2(summary.GrossRevenue - refunded)
	summary.Pending = round2(summary.Pending)
	return summary
}

// trendMonths clamps a requested window to 1..24 months, defaulting to 6.
func trendMonths(months int) int {
	switch {
	case months <= 0:
		return defaultTrendMonths
	case months > maxTrendMonths:
		return maxTrendMonths
	}
	return months
}

// windowStart returns the first instant of the oldest month in a window ending at now's month.
func windowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
}

// MonthBuckets groups dated values into zero-filled YYYY-MM buckets, oldest first.
func MonthBuckets(now time.Time, months int, values []models.DatedAmount) []models.MonthBucket {
	months = trendMonths(months)
	start := windowStart(now, months)
	buckets := make([]models.MonthBucket, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = models.MonthBucket{Month: key}
		index[key] = i
	}
	for _, v := range values {
		i, ok := index[v.At.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Count++
		buckets[i].Total += v.Amount
	}
	for i := range buckets {
		buckets[i].Total = round2(buckets[i].Total)
	}
	return buckets
}

// GradeDistribution counts each letter and its share of the total.
func GradeDistribution(letters []models.GradeLetter) []models.GradeDistributionEntry {
	counts := make(map[models.GradeLetter]int, len(models.GradeLetters))
	for _, l := range letters {
		counts[l]++
	}
	out := make([]models.GradeDistributionEntry, 0, len(models.GradeLetters))
	for _, l := range models.GradeLetters {
		out = append(out, models.GradeDistributionEntry{Grade: l, Count: counts[l], Percentage: percentage(counts[l], len(letters))})
	}
	return out
}

func gradeLetters(grades []models.GradeDetail) []models.GradeLetter {
	out := make([]models.GradeLetter, 0, len(grades))
	for _, g := range grades {
		out = append(out, g.Grade.Grade)
	}
	return out
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
