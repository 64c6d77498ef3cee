package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `
	id, order_number, customer_id, customer_name, status, total_amount, has_feedback,
	ship_line1, ship_line2, ship_city, ship_postal_code, ship_phone,
	created_at, updated_at
`

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.findItems(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	history, err := r.findHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.StatusHistory = history

	return order, nil
}

func (r *MySQLOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query)
}

func (r *MySQLOrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, customerID)
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []uint{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) InsertStatusHistory(ctx context.Context, tx *sql.Tx, entry domain.StatusHistoryEntry) (uint, error) {
	query := `INSERT INTO status_history (order_id, status, notes, created_at) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, entry.OrderID, entry.Status, entry.Notes, entry.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting status history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted history id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLOrderRepository) SetHasFeedback(ctx context.Context, tx *sql.Tx, id uint, hasFeedback bool) error {
	query := `UPDATE orders SET has_feedback = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, hasFeedback, id)
	if err != nil {
		return fmt.Errorf("updating has_feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// Upsert writes an order row pulled from the sync pipeline, replacing
// its line items wholesale. Last write wins; the upstream bakery API is
// the source of truth for synced orders.
func (r *MySQLOrderRepository) Upsert(ctx context.Context, order domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, order_number, customer_id, customer_name, status, total_amount, has_feedback,
			ship_line1, ship_line2, ship_city, ship_postal_code, ship_phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			order_number = VALUES(order_number),
			customer_id = VALUES(customer_id),
			customer_name = VALUES(customer_name),
			status = VALUES(status),
			total_amount = VALUES(total_amount),
			has_feedback = VALUES(has_feedback),
			ship_line1 = VALUES(ship_line1),
			ship_line2 = VALUES(ship_line2),
			ship_city = VALUES(ship_city),
			ship_postal_code = VALUES(ship_postal_code),
			ship_phone = VALUES(ship_phone),
			updated_at = VALUES(updated_at)
	`

	var line1, line2, city, postalCode, phone interface{}
	if addr := order.ShippingAddress; addr != nil {
		line1, city, postalCode = addr.Line1, addr.City, addr.PostalCode
		if addr.Line2 != nil {
			line2 = *addr.Line2
		}
		if addr.Phone != nil {
			phone = *addr.Phone
		}
	}

	_, err = tx.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.CustomerID, order.CustomerName,
		order.Status, order.TotalAmount, order.HasFeedback,
		line1, line2, city, postalCode, phone,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, order.ID); err != nil {
		return fmt.Errorf("clearing order items: %w", err)
	}
	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, cake_id, cake_name, quantity, unit_price, total_price)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, item.CakeID, item.CakeName, item.Quantity, item.UnitPrice, item.TotalPrice)
		if err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderIDs []uint) (map[uint][]domain.LineItem, error) {
	items := make(map[uint][]domain.LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	placeholders := ""
	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args[i] = id
	}

	query := `
		SELECT id, order_id, cake_id, cake_name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id IN (` + placeholders + `)
		ORDER BY order_id ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.CakeID, &item.CakeName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

func (r *MySQLOrderRepository) findHistory(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error) {
	query := `
		SELECT id, order_id, status, notes, created_at
		FROM status_history
		WHERE order_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	history := []domain.StatusHistoryEntry{}
	for rows.Next() {
		var entry domain.StatusHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.Notes, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning status history: %w", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status history: %w", err)
	}

	return history, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var line1, line2, city, postalCode, phone sql.NullString

	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerID, &order.CustomerName,
		&order.Status, &order.TotalAmount, &order.HasFeedback,
		&line1, &line2, &city, &postalCode, &phone,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if line1.Valid {
		addr := &domain.ShippingAddress{
			Line1:      line1.String,
			City:       city.String,
			PostalCode: postalCode.String,
		}
		if line2.Valid {
			addr.Line2 = &line2.String
		}
		if phone.Valid {
			addr.Phone = &phone.String
		}
		order.ShippingAddress = addr
	}

	return &order, nil
}
