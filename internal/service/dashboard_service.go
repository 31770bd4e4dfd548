package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

const (
	defaultPopularCourses = 5
	maxPopularCourses     = 50
)

type dashboardRepository interface {
	Counts(ctx context.Context) (*models.DashboardCounts, error)
	GradeLetters(ctx context.Context) ([]models.GradeLetter, error)
	EnrollmentsSince(ctx context.Context, from time.Time) ([]models.DatedAmount, error)
	RevenueSince(ctx context.Context, from time.Time) ([]models.DatedAmount, error)
	NetRevenue(ctx context.Context) (float64, error)
	PopularCourses(ctx context.Context, limit int) ([]models.CoursePopularity, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the dashboard payloads.
type DashboardService struct {
	repo    dashboardRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Repo    dashboardRepository
	Cache   *CacheService
	Metrics *MetricsService
	Logger  *zap.Logger
	Config  DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:    params.Repo,
		cache:   params.Cache,
		metrics: params.Metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Overview returns the headline KPIs and whether they came from cache.
func (s *DashboardService) Overview(ctx context.Context) (*models.DashboardOverview, bool, error) {
	overviewKey := s.cache.DashboardKey("overview")
	var cached models.DashboardOverview
	if s.cache.Load(ctx, overviewKey, &cached) {
		return &cached, true, nil
	}

	started := time.Now()
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load dashboard counts")
	}
	letters, err := s.repo.GradeLetters(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load grades")
	}
	revenue, err := s.repo.NetRevenue(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load revenue")
	}
	s.observe("dashboard_overview", started)

	overview := &models.DashboardOverview{
		TotalStudents:     counts.TotalStudents,
		ActiveStudents:    counts.ActiveStudents,
		TotalCourses:      counts.TotalCourses,
		ActiveCourses:     counts.ActiveCourses,
		TotalInstructors:  counts.TotalInstructors,
		TotalEnrollments:  counts.TotalEnrollments,
		TotalRevenue:      round2(revenue),
		PendingPayments:   round2(counts.PendingPayments),
		AverageGPA:        GPA(letters),
		EnrollmentRate:    percentage(counts.ActiveEnrollments, counts.ActiveCapacity),
		OpenOpportunities: counts.OpenOpportunities,
		NewLeads:          counts.NewLeads,
	}
	s.cache.Store(ctx, overviewKey, overview, s.cfg.CacheTTL)
	return overview, false, nil
}

// EnrollmentTrend buckets enrollments per month over a rolling window.
func (s *DashboardService) EnrollmentTrend(ctx context.Context, months int) ([]models.MonthBucket, bool, error) {
	return s.trend(ctx, "enrollments", months, s.repo.EnrollmentsSince)
}

// RevenueTrend buckets net revenue per month over a rolling window.
func (s *DashboardService) RevenueTrend(ctx context.Context, months int) ([]models.MonthBucket, bool, error) {
	return s.trend(ctx, "revenue", months, s.repo.RevenueSince)
}

// GradeDistribution returns the share of each letter across all grades.
func (s *DashboardService) GradeDistribution(ctx context.Context) ([]models.GradeDistributionEntry, bool, error) {
	gradesKey := s.cache.DashboardKey("grades")
	var cached []models.GradeDistributionEntry
	if s.cache.Load(ctx, gradesKey, &cached) {
		return cached, true, nil
	}
	started := time.Now()
	letters, err := s.repo.GradeLetters(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load grades")
	}
	s.observe("dashboard_grades", started)
	dist := GradeDistribution(letters)
	s.cache.Store(ctx, gradesKey, dist, s.cfg.CacheTTL)
	return dist, false, nil
}

// PopularCourses ranks courses by enrollment count.
func (s *DashboardService) PopularCourses(ctx context.Context, limit int) ([]models.CoursePopularity, bool, error) {
	if limit <= 0 || limit > maxPopularCourses {
		limit = defaultPopularCourses
	}
	key := s.cache.DashboardKey("courses", strconv.Itoa(limit))
	var cached []models.CoursePopularity
	if s.cache.Load(ctx, key, &cached) {
		return cached, true, nil
	}
	started := time.Now()
	courses, err := s.repo.PopularCourses(ctx, limit)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load popular courses")
	}
	s.observe("dashboard_courses", started)
	if courses == nil {
		courses = []models.CoursePopularity{}
	}
	for i := range courses {
		courses[i].FillRate = percentage(courses[i].Enrolled, courses[i].MaxCapacity)
	}
	s.cache.Store(ctx, key, courses, s.cfg.CacheTTL)
	return courses, false, nil
}

func (s *DashboardService) trend(ctx context.Context, name string, months int, load func(context.Context, time.Time) ([]models.DatedAmount, error)) ([]models.MonthBucket, bool, error) {
	months = trendMonths(months)
	now := s.now()
	key := s.cache.DashboardKey("trend", name, now.UTC().Format("2006-01"), strconv.Itoa(months))
	var cached []models.MonthBucket
	if s.cache.Load(ctx, key, &cached) {
		return cached, true, nil
	}

	started := time.Now()
	values, err := load(ctx, windowStart(now, months))
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load "+name+" trend")
	}
	s.observe("dashboard_"+name, started)
	buckets := MonthBuckets(now, months, values)
	s.cache.Store(ctx, key, buckets, s.cfg.CacheTTL)
	return buckets, false, nil
}

func (s *DashboardService) observe(label string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(started))
	}
}
