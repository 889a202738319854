package order

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	insertOrderQuery = `INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3) RETURNING order_id`

	insertItemQuery = `INSERT INTO order_items (order_id, book_id, title, price, quantity)
		VALUES ($1, $2, $3, $4, $5)`

	updateStatusQuery = `UPDATE orders SET status = $1 WHERE order_id = $2`

	getOrderQuery = `SELECT order_id, user_id, total_price, status, created_at
		FROM orders WHERE order_id = $1`

	listOrdersQuery = `SELECT order_id, user_id, total_price, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY order_id DESC`

	listItemsQuery = `SELECT book_id, title, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY order_item_id`
)

// PostgresRepository stores orders in PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order header and every line item in one transaction.
// Either the whole order lands or nothing does.
func (r *PostgresRepository) Create(userID int, total decimal.Decimal, items []LineItem) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback()

	var orderID int
	if err := tx.QueryRow(insertOrderQuery, userID, total.String(), StatusCreated.String()).Scan(&orderID); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	for _, item := range items {
		if _, err := tx.Exec(insertItemQuery, orderID, item.BookID, item.Title, item.Price.String(), item.Quantity); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create order: %w", err)
	}
	return orderID, nil
}

// UpdateStatus is a plain UPDATE. No compare-and-set on the previous
// status, so concurrent writers overwrite each other in arrival order.
func (r *PostgresRepository) UpdateStatus(orderID int, status Status) (int64, error) {
	res, err := r.db.Exec(updateStatusQuery, status.String(), orderID)
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	return rows, nil
}

func (r *PostgresRepository) GetByID(orderID int) (Order, error) {
	o, err := r.scanOrder(r.db.QueryRow(getOrderQuery, orderID))
	if err != nil {
		return Order{}, err
	}
	items, err := r.itemsByOrder(o.ID)
	if err != nil {
		return Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for i := range orders {
		items, err := r.itemsByOrder(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) itemsByOrder(orderID int) ([]LineItem, error) {
	rows, err := r.db.Query(listItemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var it LineItem
		var price string
		if err := rows.Scan(&it.BookID, &it.Title, &price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse item price: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOrder(row rowScanner) (Order, error) {
	var o Order
	var total, status string
	if err := row.Scan(&o.ID, &o.UserID, &total, &status, &o.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("scan order: %w", err)
	}
	var err error
	o.TotalPrice, err = decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("parse order total: %w", err)
	}
	o.Status, err = ParseStatus(status)
	if err != nil {
		return Order{}, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}
