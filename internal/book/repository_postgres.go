package book

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listBooksQuery = `
        SELECT b.book_id, b.title, b.price, b.created_at, b.updated_at,
               COALESCE(array_agg(a.author_id) FILTER (WHERE a.author_id IS NOT NULL), '{}'),
               COALESCE(array_agg(a.name) FILTER (WHERE a.name IS NOT NULL), '{}')
        FROM books b
        LEFT JOIN book_authors ba ON ba.book_id = b.book_id
        LEFT JOIN authors a ON a.author_id = ba.author_id
        GROUP BY b.book_id
        ORDER BY b.book_id
    `
	getBookQuery = `
        SELECT b.book_id, b.title, b.price, b.created_at, b.updated_at,
               COALESCE(array_agg(a.author_id) FILTER (WHERE a.author_id IS NOT NULL), '{}'),
               COALESCE(array_agg(a.name) FILTER (WHERE a.name IS NOT NULL), '{}')
        FROM books b
        LEFT JOIN book_authors ba ON ba.book_id = b.book_id
        LEFT JOIN authors a ON a.author_id = ba.author_id
        WHERE b.book_id = $1
        GROUP BY b.book_id
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Book, error) {
	rows, err := r.db.Query(listBooksQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Book, error) {
	row := r.db.QueryRow(getBookQuery, id)

	var (
		b         Book
		price     string
		authorIDs pq.Int64Array
		authors   pq.StringArray
	)
	err := row.Scan(&b.BookID, &b.Title, &price, &b.CreatedAt, &b.UpdatedAt, &authorIDs, &authors)
	if err == sql.ErrNoRows {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	b.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Book{}, err
	}
	b.AuthorIDs = toIntSlice(authorIDs)
	b.Authors = authors
	return b, nil
}

func (r *PostgresRepository) Create(b Book) (Book, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Book{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO books (title, price, created_at, updated_at) VALUES ($1,$2,$3,$4) RETURNING book_id`,
		b.Title, b.Price.String(), b.CreatedAt, b.UpdatedAt,
	).Scan(&b.BookID)
	if err != nil {
		return Book{}, err
	}

	for _, authorID := range b.AuthorIDs {
		if _, err := tx.Exec(`INSERT INTO book_authors (book_id, author_id) VALUES ($1,$2)`, b.BookID, authorID); err != nil {
			return Book{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Update(id int, b Book) (Book, error) {
	res, err := r.db.Exec(
		`UPDATE books SET title=$2, price=$3, updated_at=$4 WHERE book_id=$1`,
		id, b.Title, b.Price.String(), b.UpdatedAt,
	)
	if err != nil {
		return Book{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Book{}, ErrNotFound
	}
	b.BookID = id
	return b, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM books WHERE book_id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(rows *sql.Rows) (Book, error) {
	var (
		b         Book
		price     string
		authorIDs pq.Int64Array
		authors   pq.StringArray
	)
	if err := rows.Scan(&b.BookID, &b.Title, &price, &b.CreatedAt, &b.UpdatedAt, &authorIDs, &authors); err != nil {
		return Book{}, err
	}
	var err error
	b.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Book{}, err
	}
	b.AuthorIDs = toIntSlice(authorIDs)
	b.Authors = authors
	return b, nil
}

func toIntSlice(in pq.Int64Array) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		out = append(out, int(v))
	}
	return out
}
