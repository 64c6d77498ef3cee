package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bakehouse/internal/domain"
)

type MySQLInventoryRepository struct {
	db *sql.DB
}

func NewMySQLInventoryRepository(db *sql.DB) *MySQLInventoryRepository {
	return &MySQLInventoryRepository{db: db}
}

func (r *MySQLInventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, name, current_stock, minimum_stock, unit_cost, created_at, updated_at
		FROM ingredients
		ORDER BY name ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CurrentStock, &item.MinimumStock,
			&item.UnitCost, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}

	return items, nil
}

// ListCakeMargins returns profit margin percentages keyed by cake id,
// for enriching sales figures.
func (r *MySQLInventoryRepository) ListCakeMargins(ctx context.Context) (map[uint]float64, error) {
	query := `SELECT id, profit_margin FROM cakes`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying cake margins: %w", err)
	}
	defer rows.Close()

	margins := map[uint]float64{}
	for rows.Next() {
		var id uint
		var margin float64
		if err := rows.Scan(&id, &margin); err != nil {
			return nil, fmt.Errorf("scanning cake margin: %w", err)
		}
		margins[id] = margin
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cake margins: %w", err)
	}

	return margins, nil
}

// Upsert writes an ingredient row from the sync pipeline. Last write
// wins; the upstream bakery API is the source of truth for stock levels.
func (r *MySQLInventoryRepository) Upsert(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO ingredients (id, name, current_stock, minimum_stock, unit_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			current_stock = VALUES(current_stock),
			minimum_stock = VALUES(minimum_stock),
			unit_cost = VALUES(unit_cost),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.CurrentStock, item.MinimumStock,
		item.UnitCost, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting ingredient: %w", err)
	}

	return nil
}
