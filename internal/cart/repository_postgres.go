package cart

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const itemsByUserQuery = `
        SELECT ci.cart_item_id, ci.book_id, b.title, b.price, ci.book_quantity
        FROM cart_items ci
        JOIN books b ON b.book_id = ci.book_id
        WHERE ci.user_id = $1
        ORDER BY ci.cart_item_id
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ItemsByUser(userID int) ([]ItemDetail, error) {
	rows, err := r.db.Query(itemsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ItemDetail, 0)
	for rows.Next() {
		var (
			d     ItemDetail
			price string
		)
		if err := rows.Scan(&d.CartItemID, &d.BookID, &d.Title, &price, &d.Quantity); err != nil {
			return nil, err
		}
		d.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ItemByID(cartItemID int) (Item, error) {
	var it Item
	err := r.db.QueryRow(
		`SELECT cart_item_id, user_id, book_id, book_quantity FROM cart_items WHERE cart_item_id = $1`,
		cartItemID,
	).Scan(&it.CartItemID, &it.UserID, &it.BookID, &it.Quantity)
	if err == sql.ErrNoRows {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

// Add increments the quantity when the user already has the book in the
// cart, otherwise inserts a fresh row.
func (r *PostgresRepository) Add(userID, bookID, quantity int) error {
	_, err := r.db.Exec(
		`INSERT INTO cart_items (user_id, book_id, book_quantity)
         VALUES ($1,$2,$3)
         ON CONFLICT (user_id, book_id)
         DO UPDATE SET book_quantity = cart_items.book_quantity + EXCLUDED.book_quantity`,
		userID, bookID, quantity,
	)
	return err
}

func (r *PostgresRepository) UpdateQuantity(cartItemID, quantity int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET book_quantity = $2 WHERE cart_item_id = $1`, cartItemID, quantity)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(cartItemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_item_id = $1`, cartItemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every row for the user in one statement.
func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
