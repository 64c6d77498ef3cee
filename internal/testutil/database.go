package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB expects a MySQL instance on localhost:3306 with a
// database named 'bakehouse_test'. Tests skip when it is unavailable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/bakehouse_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"feedback", "status_history", "order_items", "orders", "ingredients", "cakes", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL PRIMARY KEY,
		order_number VARCHAR(50) NOT NULL,
		customer_id INT UNSIGNED NOT NULL DEFAULT 0,
		customer_name VARCHAR(150) NOT NULL DEFAULT '',
		status VARCHAR(30) NOT NULL DEFAULT 'pending',
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		has_feedback TINYINT(1) NOT NULL DEFAULT 0,
		ship_line1 VARCHAR(255),
		ship_line2 VARCHAR(255),
		ship_city VARCHAR(100),
		ship_postal_code VARCHAR(20),
		ship_phone VARCHAR(30),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_customer (customer_id),
		INDEX idx_status (status)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		cake_id INT UNSIGNED NOT NULL DEFAULT 0,
		cake_name VARCHAR(150) NOT NULL DEFAULT '',
		quantity INT NOT NULL DEFAULT 1,
		unit_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		total_price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	createStatusHistoryTable := `
	CREATE TABLE IF NOT EXISTS status_history (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		status VARCHAR(30) NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	createFeedbackTable := `
	CREATE TABLE IF NOT EXISTS feedback (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		rating INT NOT NULL,
		message TEXT NOT NULL,
		image_ref VARCHAR(255),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE INDEX idx_order (order_id)
	)`

	createIngredientsTable := `
	CREATE TABLE IF NOT EXISTS ingredients (
		id INT UNSIGNED NOT NULL PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		current_stock INT NOT NULL DEFAULT 0,
		minimum_stock INT NOT NULL DEFAULT 0,
		unit_cost DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createCakesTable := `
	CREATE TABLE IF NOT EXISTS cakes (
		id INT UNSIGNED NOT NULL PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		profit_margin DECIMAL(5,2) NOT NULL DEFAULT 0.00
	)`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARBINARY(100) NOT NULL,
		role VARCHAR(30) NOT NULL DEFAULT 'staff',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
		{"status_history", createStatusHistoryTable},
		{"feedback", createFeedbackTable},
		{"ingredients", createIngredientsTable},
		{"cakes", createCakesTable},
		{"users", createUsersTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
