package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

type MySQLFeedbackRepository struct {
	db *sql.DB
}

func NewMySQLFeedbackRepository(db *sql.DB) *MySQLFeedbackRepository {
	return &MySQLFeedbackRepository{db: db}
}

func (r *MySQLFeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	query := `
		SELECT id, order_id, rating, message, image_ref, created_at
		FROM feedback
		WHERE id = ?
	`

	feedback, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback by id: %w", err)
	}

	return feedback, nil
}

func (r *MySQLFeedbackRepository) FindByOrderID(ctx context.Context, orderID uint) (*domain.Feedback, error) {
	query := `
		SELECT id, order_id, rating, message, image_ref, created_at
		FROM feedback
		WHERE order_id = ?
	`

	feedback, err := r.scanOne(r.db.QueryRowContext(ctx, query, orderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no feedback for order %d", orderID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback by order: %w", err)
	}

	return feedback, nil
}

func (r *MySQLFeedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	query := `
		SELECT id, order_id, rating, message, image_ref, created_at
		FROM feedback
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	feedback := []domain.Feedback{}
	for rows.Next() {
		f, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		feedback = append(feedback, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return feedback, nil
}

func (r *MySQLFeedbackRepository) Insert(ctx context.Context, tx *sql.Tx, feedback domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, order_id, rating, message, image_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		feedback.ID, feedback.OrderID, feedback.Rating, feedback.Message,
		feedback.ImageRef, feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}

	return nil
}

func (r *MySQLFeedbackRepository) Update(ctx context.Context, tx *sql.Tx, feedback domain.Feedback) error {
	query := `UPDATE feedback SET rating = ?, message = ?, image_ref = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query,
		feedback.Rating, feedback.Message, feedback.ImageRef, feedback.ID)
	if err != nil {
		return fmt.Errorf("updating feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", feedback.ID))
	}

	return nil
}

func (r *MySQLFeedbackRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM feedback WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", id))
	}

	return nil
}

// Upsert writes a feedback row from the sync pipeline. Locally created
// feedback shares the table; sync only ever touches rows whose ids came
// from upstream.
func (r *MySQLFeedbackRepository) Upsert(ctx context.Context, feedback domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, order_id, rating, message, image_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			rating = VALUES(rating),
			message = VALUES(message),
			image_ref = VALUES(image_ref)
	`

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID, feedback.OrderID, feedback.Rating, feedback.Message,
		feedback.ImageRef, feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting feedback: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *MySQLFeedbackRepository) scanOne(row rowScanner) (*domain.Feedback, error) {
	var feedback domain.Feedback
	var imageRef sql.NullString

	err := row.Scan(&feedback.ID, &feedback.OrderID, &feedback.Rating,
		&feedback.Message, &imageRef, &feedback.CreatedAt)
	if err != nil {
		return nil, err
	}

	if imageRef.Valid {
		feedback.ImageRef = &imageRef.String
	}

	return &feedback, nil
}
