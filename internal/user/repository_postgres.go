package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const userColumns = `user_id, email, password, first_name, last_name, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(
		`INSERT INTO users (email, password, first_name, last_name, created_at, updated_at)
         VALUES ($1,$2,$3,$4,$5,$6)
         RETURNING user_id`,
		u.Email, u.Password, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	err := r.db.QueryRow(
		`UPDATE users SET email=$2, first_name=$3, last_name=$4, updated_at=$5
         WHERE user_id=$1
         RETURNING `+userColumns,
		id, u.Email, u.FirstName, u.LastName, u.UpdatedAt,
	).Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
