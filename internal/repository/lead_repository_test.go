package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lingua-center-api/internal/models"
)

func TestLeadRepositoryConvert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET status = $3, converted_student_id = $4, updated_at = $5 WHERE id = $1 AND status = $2")).
		WithArgs(int64(8), models.LeadQualified, models.LeadConverted, int64(30), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lead := &models.Lead{ID: 8, FullName: "Maria Lopez", Status: models.LeadQualified}
	student := &models.Student{FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com", Active: true}
	require.NoError(t, repo.Convert(context.Background(), lead, student))
	assert.Equal(t, models.LeadConverted, lead.Status)
	require.NotNil(t, lead.ConvertedStudentID)
	assert.Equal(t, int64(30), *lead.ConvertedStudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryConvertConcurrentChange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectExec("UPDATE leads SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	lead := &models.Lead{ID: 8, Status: models.LeadQualified}
	err := repo.Convert(context.Background(), lead, &models.Student{Email: "maria@example.com"})
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.Equal(t, models.LeadQualified, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryDeleteDetachesOpportunities(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE opportunities SET lead_id = NULL WHERE lead_id = $1")).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads WHERE id = $1")).WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}
