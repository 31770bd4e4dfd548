package models

import (
	"time"

	"github.com/noah-isme/lingua-center-api/pkg/export"
)

// ReportType enumerates exportable datasets.
type ReportType string

const (
	ReportStudents    ReportType = "STUDENTS"
	ReportPayments    ReportType = "PAYMENTS"
	ReportGrades      ReportType = "GRADES"
	ReportEnrollments ReportType = "ENROLLMENTS"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportStudents, ReportPayments, ReportGrades, ReportEnrollments:
		return true
	}
	return false
}

// ReportStatus captures background job lifecycle states.
type ReportStatus string

const (
	ReportStatusScheduled  ReportStatus = "SCHEDULED"
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusFinished   ReportStatus = "FINISHED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// ReportJob persisted background job metadata.
type ReportJob struct {
	ID           string        `db:"id" json:"id"`
	Type         ReportType    `db:"type" json:"type"`
	Format       export.Format `db:"format" json:"format"`
	Status       ReportStatus  `db:"status" json:"status"`
	RunAt        time.Time     `db:"run_at" json:"runAt"`
	FilePath     *string       `db:"file_path" json:"-"`
	ResultURL    *string       `db:"result_url" json:"resultUrl,omitempty"`
	ErrorMessage *string       `db:"error_message" json:"error,omitempty"`
	CreatedBy    *int64        `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	FinishedAt   *time.Time    `db:"finished_at" json:"finishedAt,omitempty"`
}

// ScheduleReportRequest schedules a report for asynchronous generation.
type ScheduleReportRequest struct {
	Type   ReportType `json:"type" validate:"required,oneof=STUDENTS PAYMENTS GRADES ENROLLMENTS"`
	Format string     `json:"format" validate:"omitempty,oneof=PDF EXCEL CSV pdf excel csv"`
	RunAt  *time.Time `json:"runAt,omitempty"`
}

// ReportFile is a rendered report ready for download.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
