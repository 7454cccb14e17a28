package storage

import (
	"database/sql"
	"fmt"

	"github.com/taydongtruong/CoffeeShopManagerApp/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price BIGINT NOT NULL,
			image_url TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			items TEXT NOT NULL,
			total_price BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedMenu inserts a starter menu on a fresh database so the dashboard has
// something to show on first run.
func (r *PostgresRepository) SeedMenu() error {
	var count int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM menu_items").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []domain.MenuItem{
		{Name: "Espresso", Price: 35000},
		{Name: "Latte", Price: 42000},
	}
	for i := range samples {
		if err := r.CreateMenuItem(&samples[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) ListMenuItems() ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, price, COALESCE(image_url, ''), created_at
		FROM menu_items
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) CreateMenuItem(item *domain.MenuItem) error {
	return r.DB.QueryRow(
		"INSERT INTO menu_items (name, price, image_url) VALUES ($1, $2, $3) RETURNING id, created_at",
		item.Name, item.Price, item.ImageURL).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *PostgresRepository) GetMenuItemByName(name string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
		SELECT id, name, price, COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1`, name).
		Scan(&item.ID, &item.Name, &item.Price, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem applies a patch inside one transaction so that concurrent
// updates cannot interleave: the current row is locked, missing patch fields
// keep their stored value, and the merged row is written back.
func (r *PostgresRepository) UpdateMenuItem(id int, patch domain.MenuItemPatch) (*domain.MenuItem, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var item domain.MenuItem
	err = tx.QueryRow(`
		SELECT id, name, price, COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE id = $1
		FOR UPDATE`, id).
		Scan(&item.ID, &item.Name, &item.Price, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	if _, err := tx.Exec(
		"UPDATE menu_items SET name = $1, price = $2 WHERE id = $3",
		item.Name, item.Price, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItemImage(id int, imageURL string) (int64, error) {
	result, err := r.DB.Exec("UPDATE menu_items SET image_url = $1 WHERE id = $2", imageURL, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) DeleteMenuItem(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, items, total_price, status, created_at
		FROM orders
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Items, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (items, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		order.Items, order.TotalPrice, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(id int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRow(`
		SELECT id, items, total_price, status, created_at
		FROM orders
		WHERE id = $1`, id).
		Scan(&order.ID, &order.Items, &order.TotalPrice, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CompleteOrder marks an order completed. Re-completing an already completed
// order matches a row and is a harmless rewrite, so only a missing id yields
// zero affected rows.
func (r *PostgresRepository) CompleteOrder(id int) (int64, error) {
	result, err := r.DB.Exec("UPDATE orders SET status = $1 WHERE id = $2", domain.StatusCompleted, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) DeleteOrder(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
