package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/export"
	"github.com/noah-isme/lingua-center-api/pkg/storage"
)

type reportSourceStub struct{}

func (reportSourceStub) StudentRows(context.Context) ([]models.Student, error) {
	phone := "+15550100"
	return []models.Student{
		{ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Phone: &phone, Active: true, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: 2, FirstName: "Ben", LastName: "Okafor", Email: "ben@example.com"},
	}, nil
}

func (reportSourceStub) PaymentRows(context.Context) ([]models.Payment, error) {
	return []models.Payment{{ID: 7, StudentID: 1, Amount: 250, RefundedAmount: 50, Currency: "USD", Status: models.PaymentPartiallyRefunded, Method: models.PaymentMethodCard}}, nil
}

func (reportSourceStub) GradeRows(context.Context) ([]models.GradeDetail, error) {
	score := 91.5
	return []models.GradeDetail{{Grade: models.Grade{ID: 3, Grade: models.GradeA, NumericScore: &score}, StudentName: "Ana Silva", CourseName: "IELTS Prep"}}, nil
}

func (reportSourceStub) EnrollmentRows(context.Context) ([]repository.EnrollmentRow, error) {
	return []repository.EnrollmentRow{{StudentID: 1, StudentName: "Ana Silva", Email: "ana@example.com", CourseCode: "IELTS-1", CourseName: "IELTS Prep"}}, nil
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(reportSourceStub{}, store, signer, ExportConfig{APIPrefix: "/api/v1"}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC) }
	return svc, store
}

func TestExportServiceExportCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	file, err := svc.Export(context.Background(), "students", "csv")
	require.NoError(t, err)
	assert.Equal(t, "students_20240601_123045.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "First Name", records[0][1])
	assert.Equal(t, "ana@example.com", records[1][3])
	assert.Equal(t, "+15550100", records[1][4])
}

func TestExportServiceExportFormats(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	pdf, err := svc.Export(context.Background(), models.ReportPayments, "PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pdf.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF")))

	xlsx, err := svc.Export(context.Background(), models.ReportGrades, "EXCEL")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(xlsx.Filename, ".xlsx"))
	assert.True(t, bytes.HasPrefix(xlsx.Content, []byte("PK")))
}

func TestExportServiceRejectsUnknownTypeAndFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Export(context.Background(), "ATTENDANCE", "csv")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "type")

	_, err = svc.Export(context.Background(), models.ReportStudents, "docx")
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "format")
}

func TestExportServiceGenerateStoresAndSigns(t *testing.T) {
	svc, store := newExportServiceForTest(t)
	job := &models.ReportJob{ID: "job-1", Type: models.ReportEnrollments, Format: export.FormatCSV}

	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "job-1/enrollments_20240601_123045.csv", result.RelativePath)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/reports/download/"))

	jobID, relPath, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, result.RelativePath, relPath)

	reader, size, err := store.Open(relPath)
	require.NoError(t, err)
	defer reader.Close()
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), size)
	assert.Contains(t, string(body), "IELTS-1")
}
