package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/ats-interviewer/internal/apperror"
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func applicationColumns() []string {
	return []string{"id", "candidate_id", "job_id", "resume_path", "resume_text", "status", "applied_at", "updated_at"}
}

func TestFindByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepository(gdb)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "applications" WHERE id = \$1`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows(applicationColumns()).
			AddRow(id.String(), uuid.NewString(), uuid.NewString(), "", "", "pending", now, now))

	app, err := repo.FindByID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, app.ID)
	assert.Equal(t, model.ApplicationPending, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepository(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "applications" WHERE id = \$1`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows(applicationColumns()))

	_, err := repo.FindByID(id.String())
	assert.Equal(t, apperror.KindApplicationNotFound, apperror.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepository(gdb)

	id := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
		WithArgs("completed", sqlmock.AnyArg(), id, "interviewing").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	moved, err := repo.TransitionStatus(id, model.ApplicationInterviewing, model.ApplicationCompleted)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatus_WrongCurrentStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepository(gdb)

	id := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
		WithArgs("completed", sqlmock.AnyArg(), id, "interviewing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	moved, err := repo.TransitionStatus(id, model.ApplicationInterviewing, model.ApplicationCompleted)
	require.NoError(t, err)
	assert.False(t, moved, "no row in the expected status means no transition")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications" WHERE status = \$1`).
		WithArgs("interviewing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStatus(model.ApplicationInterviewing)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
