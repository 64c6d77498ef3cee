package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
	"bakehouse/internal/testutil"
)

// Unit Tests

func TestNewMySQLFeedbackRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLFeedbackRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertDeliveredOrder(t *testing.T, db *sql.DB, id uint) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO orders (id, order_number, customer_id, customer_name, status, total_amount)
		VALUES (?, ?, 9, 'Maria Lopez', 'delivered', 120.50)
	`, id, "BH-0001")
	require.NoError(t, err)
}

func TestFeedbackRepository_InsertAndFindByOrderID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLFeedbackRepository(db)
	insertDeliveredOrder(t, db, 1)

	tx, err := db.Begin()
	require.NoError(t, err)

	feedback := domain.Feedback{
		ID:        "fb-1",
		OrderID:   1,
		Rating:    5,
		Message:   "the cake was wonderful",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(context.Background(), tx, feedback))
	require.NoError(t, tx.Commit())

	found, err := repo.FindByOrderID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "fb-1", found.ID)
	assert.Equal(t, 5, found.Rating)
	assert.Equal(t, "the cake was wonderful", found.Message)
	assert.Nil(t, found.ImageRef)
}

func TestFeedbackRepository_FindByOrderID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLFeedbackRepository(db)

	found, err := repo.FindByOrderID(context.Background(), 9999)
	assert.Error(t, err)
	assert.Nil(t, found)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestFeedbackRepository_DeleteTwice_SecondIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLFeedbackRepository(db)
	insertDeliveredOrder(t, db, 1)

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), tx, domain.Feedback{
		ID: "fb-1", OrderID: 1, Rating: 4, Message: "good", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, tx.Commit())

	tx, err = db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), tx, "fb-1"))
	require.NoError(t, tx.Commit())

	tx, err = db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.Delete(context.Background(), tx, "fb-1")
	assert.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestFeedbackRepository_Upsert_UpdatesInPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLFeedbackRepository(db)
	insertDeliveredOrder(t, db, 1)

	feedback := domain.Feedback{
		ID: "fb-1", OrderID: 1, Rating: 3, Message: "okay", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(context.Background(), feedback))

	feedback.Rating = 5
	feedback.Message = "actually great"
	require.NoError(t, repo.Upsert(context.Background(), feedback))

	found, err := repo.FindByID(context.Background(), "fb-1")
	require.NoError(t, err)
	assert.Equal(t, 5, found.Rating)
	assert.Equal(t, "actually great", found.Message)
}
