package author

import (
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("author not found")

type Repository interface {
	List() ([]Author, error)
	GetByID(id int) (Author, error)
	Create(a Author) (Author, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Author, error) {
	rows, err := r.db.Query(`SELECT author_id, name, COALESCE(bio, '') FROM authors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Author, 0)
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.AuthorID, &a.Name, &a.Bio); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Author, error) {
	var a Author
	err := r.db.QueryRow(`SELECT author_id, name, COALESCE(bio, '') FROM authors WHERE author_id = $1`, id).
		Scan(&a.AuthorID, &a.Name, &a.Bio)
	if err == sql.ErrNoRows {
		return Author{}, ErrNotFound
	}
	if err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(a Author) (Author, error) {
	err := r.db.QueryRow(`INSERT INTO authors (name, bio) VALUES ($1,$2) RETURNING author_id`, a.Name, a.Bio).
		Scan(&a.AuthorID)
	if err != nil {
		return Author{}, err
	}
	return a, nil
}
