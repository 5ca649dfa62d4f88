package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestProjectFileCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectFileRepository(db)

	uploader := "user-1"
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO project_files`).
		WithArgs("proj-1", "proj-1/abc.png", "logo.png", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("file-1", now))

	file := &ProjectFile{
		ProjectID:  "proj-1",
		FilePath:   "proj-1/abc.png",
		FileName:   "logo.png",
		UploadedBy: &uploader,
	}
	require.NoError(t, repo.Create(context.Background(), file))
	assert.Equal(t, "file-1", file.ID)
	assert.Equal(t, now, file.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectFileFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectFileRepository(db)

	columns := []string{"id", "project_id", "file_path", "file_name", "uploaded_by", "created_at"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, file_path, file_name, uploaded_by, created_at`).
			WithArgs("file-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("file-1", "proj-1", "proj-1/abc.png", "logo.png", "user-1", time.Now()))

		file, err := repo.FindByID(context.Background(), "file-1")
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.Equal(t, "logo.png", file.FileName)
		require.NotNil(t, file.UploadedBy)
		assert.Equal(t, "user-1", *file.UploadedBy)
	})

	t.Run("missing row is nil, not error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, file_path, file_name, uploaded_by, created_at`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		file, err := repo.FindByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectFileFindByProjectID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectFileRepository(db)

	columns := []string{"id", "project_id", "file_path", "file_name", "uploaded_by", "created_at"}
	mock.ExpectQuery(`SELECT id, project_id, file_path, file_name, uploaded_by, created_at`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("file-1", "proj-1", "proj-1/a.png", "a.png", nil, time.Now()).
			AddRow("file-2", "proj-1", "proj-1/b.png", "b.png", "user-1", time.Now()))

	files, err := repo.FindByProjectID(context.Background(), "proj-1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Nil(t, files[0].UploadedBy)
	assert.Equal(t, "b.png", files[1].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectFileDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectFileRepository(db)

	mock.ExpectExec(`DELETE FROM project_files WHERE id`).
		WithArgs("file-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "file-1"))

	mock.ExpectExec(`DELETE FROM project_files WHERE project_id`).
		WithArgs("proj-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, repo.DeleteByProjectID(context.Background(), "proj-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectFileCountByProjectID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectFileRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM project_files`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountByProjectID(context.Background(), "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
