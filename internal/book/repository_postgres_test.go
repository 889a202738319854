package book

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func bookRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"book_id", "title", "price", "created_at", "updated_at", "author_ids", "authors"})
}

func TestList_ScansAggregatedAuthors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := bookRows().
		AddRow(10, "The Go Programming Language", "15.99", "t", "u", "{1,2}", "{Alan Donovan,Brian Kernighan}").
		AddRow(20, "Learning SQL", "9.99", "t", "u", "{}", "{}")
	mock.ExpectQuery("FROM books b").WillReturnRows(rows)

	books, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if !books[0].Price.Equal(decimal.RequireFromString("15.99")) {
		t.Fatalf("unexpected price %s", books[0].Price)
	}
	if len(books[0].AuthorIDs) != 2 || books[0].AuthorIDs[1] != 2 {
		t.Fatalf("unexpected author ids %+v", books[0].AuthorIDs)
	}
	if len(books[1].Authors) != 0 {
		t.Fatalf("expected no authors for book 20, got %+v", books[1].Authors)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM books b").WithArgs(99).WillReturnRows(bookRows())

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_LinksAuthorsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO books").
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}).AddRow(30))
	mock.ExpectExec("INSERT INTO book_authors").
		WithArgs(30, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(Book{
		Title:     "The Pragmatic Programmer",
		Price:     decimal.RequireFromString("29.50"),
		AuthorIDs: []int{1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.BookID != 30 {
		t.Fatalf("expected book id 30, got %d", created.BookID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
