package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns = `address_id, user_id, street, city, postal_code, country, created_at, updated_at`

	insertAddressQuery = `
        INSERT INTO addresses (user_id, street, city, postal_code, country, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING ` + addressColumns + `
    `
	updateAddressQuery = `
        UPDATE addresses
        SET street=$3, city=$4, postal_code=$5, country=$6, updated_at=$7
        WHERE user_id=$1 AND address_id=$2
        RETURNING ` + addressColumns + `
    `
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.AddressID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery, a.UserID, a.Street, a.City, a.PostalCode, a.Country, a.CreatedAt, a.UpdatedAt).
		Scan(&a.AddressID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	err := r.db.QueryRow(updateAddressQuery, userID, addressID, a.Street, a.City, a.PostalCode, a.Country, a.UpdatedAt).
		Scan(&a.AddressID, &a.UserID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE user_id=$1 AND address_id=$2`, userID, addressID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
