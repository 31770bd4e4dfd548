package models

import "time"

// DashboardOverview is the headline KPI block of the dashboard.
type DashboardOverview struct {
	TotalStudents     int     `json:"totalStudents"`
	ActiveStudents    int     `json:"activeStudents"`
	TotalCourses      int     `json:"totalCourses"`
	ActiveCourses     int     `json:"activeCourses"`
	TotalInstructors  int     `json:"totalInstructors"`
	TotalEnrollments  int     `json:"totalEnrollments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PendingPayments   float64 `json:"pendingPayments"`
	AverageGPA        float64 `json:"averageGpa"`
	EnrollmentRate    float64 `json:"enrollmentRate"`
	OpenOpportunities int     `json:"openOpportunities"`
	NewLeads          int     `json:"newLeads"`
}

// MonthBucket is one month of a rolling trend window, keyed YYYY-MM.
type MonthBucket struct {
	Month string  `json:"month"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// DashboardCounts is the raw count snapshot read from storage.
type DashboardCounts struct {
	TotalStudents     int     `db:"total_students"`
	ActiveStudents    int     `db:"active_students"`
	TotalCourses      int     `db:"total_courses"`
	ActiveCourses     int     `db:"active_courses"`
	TotalInstructors  int     `db:"total_instructors"`
	TotalEnrollments  int     `db:"total_enrollments"`
	ActiveCapacity    int     `db:"active_capacity"`
	ActiveEnrollments int     `db:"active_enrollments"`
	OpenOpportunities int     `db:"open_opportunities"`
	NewLeads          int     `db:"new_leads"`
	PendingPayments   float64 `db:"pending_payments"`
}

// GradeDistributionEntry is the count and share of one letter grade.
type GradeDistributionEntry struct {
	Grade      GradeLetter `json:"grade"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// CoursePopularity ranks courses by enrollment.
type CoursePopularity struct {
	CourseID    int64   `db:"course_id" json:"courseId"`
	CourseName  string  `db:"course_name" json:"courseName"`
	Enrolled    int     `db:"enrolled" json:"enrolled"`
	MaxCapacity int     `db:"max_capacity" json:"maxCapacity"`
	FillRate    float64 `db:"-" json:"fillRate"`
}

// DatedAmount is a timestamped value used to build month buckets.
type DatedAmount struct {
	At     time.Time `db:"at"`
	Amount float64   `db:"amount"`
}
