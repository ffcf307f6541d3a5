package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The completion transition must be exactly one UPDATE touching all
// four derived columns, so the assignee can never be written without
// the matching rotation index.
func TestApplyCompletion_SingleRowUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChoreRepository(db)

	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	nextDue := now.AddDate(0, 0, 7)
	assignee := uint64(3)
	index := 2

	// Columns are sorted by GORM: assigned_to_id, current_assignee_index,
	// last_completed, next_due, updated_at, then the WHERE id.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `chores` SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), now, nextDue, sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ApplyCompletion(42, ChoreCompletion{
		LastCompleted:        now,
		NextDue:              nextDue,
		AssignedToID:         &assignee,
		CurrentAssigneeIndex: &index,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCompletion_NonRotatingKeepsAssigneeColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChoreRepository(db)

	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	nextDue := now.AddDate(0, 0, 1)
	assignee := uint64(7)

	// A non-rotating completion still writes the same columns; the
	// assignee and index values are simply carried over unchanged.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `chores` SET").
		WithArgs(sqlmock.AnyArg(), nil, now, nextDue, sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ApplyCompletion(7, ChoreCompletion{
		LastCompleted:        now,
		NextDue:              nextDue,
		AssignedToID:         &assignee,
		CurrentAssigneeIndex: nil,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
