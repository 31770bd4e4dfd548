package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/export"
	"github.com/noah-isme/lingua-center-api/pkg/storage"
)

type reportDataSource interface {
	StudentRows(ctx context.Context) ([]models.Student, error)
	PaymentRows(ctx context.Context) ([]models.Payment, error)
	GradeRows(ctx context.Context) ([]models.GradeDetail, error)
	EnrollmentRows(ctx context.Context) ([]repository.EnrollmentRow, error)
}

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Open(relPath string) (io.ReadCloser, int64, error)
	Delete(relPath string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	Retention time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService builds report datasets and renders or persists them.
type ExportService struct {
	source  reportDataSource
	storage fileStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(source reportDataSource, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 72 * time.Hour
	}
	return &ExportService{source: source, storage: files, signer: signer, logger: logger, cfg: cfg, now: time.Now}
}

// Export renders a report synchronously for direct download.
func (s *ExportService) Export(ctx context.Context, reportType models.ReportType, rawFormat string) (*models.ReportFile, error) {
	reportType = models.ReportType(strings.ToUpper(strings.TrimSpace(string(reportType))))
	if !reportType.Valid() {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "unsupported report type",
			map[string]string{"type": "type must be one of STUDENTS PAYMENTS GRADES ENROLLMENTS"})
	}
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, "unsupported export format",
			map[string]string{"format": "format must be one of PDF EXCEL CSV"})
	}
	file, err := s.render(ctx, reportType, format)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to generate report")
	}
	return file, nil
}

// Generate renders the job's report, stores it and signs a download URL.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	file, err := s.render(ctx, job.Type, job.Format)
	if err != nil {
		return nil, err
	}
	relPath, err := s.storage.Save(job.ID+"/"+file.Filename, file.Content)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/reports/download/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string) (jobID, relPath string, err error) {
	return s.signer.Parse(token)
}

// Open returns a handle to a stored file.
func (s *ExportService) Open(relPath string) (io.ReadCloser, int64, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes stored files older than the retention window.
func (s *ExportService) Cleanup(ctx context.Context, _ time.Time) error {
	deleted, err := s.storage.CleanupOlderThan(s.cfg.Retention)
	if err != nil {
		return err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(deleted)))
	}
	return nil
}

func (s *ExportService) render(ctx context.Context, reportType models.ReportType, format export.Format) (*models.ReportFile, error) {
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}
	dataset, err := s.buildDataset(ctx, reportType)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(dataset)
	if err != nil {
		return nil, err
	}
	return &models.ReportFile{
		Filename:    export.Filename(string(reportType), renderer, s.now()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, reportType models.ReportType) (export.Dataset, error) {
	switch reportType {
	case models.ReportStudents:
		return s.studentDataset(ctx)
	case models.ReportPayments:
		return s.paymentDataset(ctx)
	case models.ReportGrades:
		return s.gradeDataset(ctx)
	case models.ReportEnrollments:
		return s.enrollmentDataset(ctx)
	default:
		return export.Dataset{}, fmt.Errorf("unsupported report type %s", reportType)
	}
}

func (s *ExportService) studentDataset(ctx context.Context) (export.Dataset, error) {
	students, err := s.source.StudentRows(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"ID":            strconv.FormatInt(st.ID, 10),
			"First Name":    st.FirstName,
			"Last Name":     st.LastName,
			"Email":         st.Email,
			"Phone":         deref(st.Phone),
			"Date of Birth": formatDate(st.DateOfBirth),
			"Active":        strconv.FormatBool(st.Active),
			"Created At":    formatReportTime(st.CreatedAt),
		})
	}
	return export.Dataset{
		Title:   "Students",
		Headers: []string{"ID", "First Name", "Last Name", "Email", "Phone", "Date of Birth", "Active", "Created At"},
		Rows:    rows,
	}, nil
}

func (s *ExportService) paymentDataset(ctx context.Context) (export.Dataset, error) {
	payments, err := s.source.PaymentRows(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(payments))
	for _, p := range payments {
		course := ""
		if p.CourseID != nil {
			course = strconv.FormatInt(*p.CourseID, 10)
		}
		rows = append(rows, map[string]string{
			"ID":           strconv.FormatInt(p.ID, 10),
			"Student ID":   strconv.FormatInt(p.StudentID, 10),
			"Course ID":    course,
			"Amount":       fmt.Sprintf("%.2f", p.Amount),
			"Refunded":     fmt.Sprintf("%.2f", p.RefundedAmount),
			"Currency":     p.Currency,
			"Status":       string(p.Status),
			"Method":       string(p.Method),
			"Reference":    deref(p.Reference),
			"Payment Date": formatReportTime(p.PaymentDate),
		})
	}
	return export.Dataset{
		Title:   "Payments",
		Headers: []string{"ID", "Student ID", "Course ID", "Amount", "Refunded", "Currency", "Status", "Method", "Reference", "Payment Date"},
		Rows:    rows,
	}, nil
}

func (s *ExportService) gradeDataset(ctx context.Context) (export.Dataset, error) {
	grades, err := s.source.GradeRows(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(grades))
	for _, g := range grades {
		score := ""
		if g.NumericScore != nil {
			score = fmt.Sprintf("%.2f", *g.NumericScore)
		}
		rows = append(rows, map[string]string{
			"ID":         strconv.FormatInt(g.ID, 10),
			"Student":    g.StudentName,
			"Course":     g.CourseName,
			"Grade":      string(g.Grade.Grade),
			"Points":     fmt.Sprintf("%.1f", models.GradePoints(g.Grade.Grade)),
			"Score":      score,
			"Grade Date": g.GradeDate.UTC().Format("2006-01-02"),
			"Comments":   deref(g.Comments),
		})
	}
	return export.Dataset{
		Title:   "Grades",
		Headers: []string{"ID", "Student", "Course", "Grade", "Points", "Score", "Grade Date", "Comments"},
		Rows:    rows,
	}, nil
}

func (s *ExportService) enrollmentDataset(ctx context.Context) (export.Dataset, error) {
	enrollments, err := s.source.EnrollmentRows(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, map[string]string{
			"Student ID":  strconv.FormatInt(e.StudentID, 10),
			"Student":     e.StudentName,
			"Email":       e.Email,
			"Course Code": e.CourseCode,
			"Course":      e.CourseName,
			"Enrolled At": formatReportTime(e.EnrolledAt),
		})
	}
	return export.Dataset{
		Title:   "Enrollments",
		Headers: []string{"Student ID", "Student", "Email", "Course Code", "Course", "Enrolled At"},
		Rows:    rows,
	}, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatReportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
