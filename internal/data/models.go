// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// ErrRecordNotFound is the sentinel matched by every NotFoundError.
var ErrRecordNotFound = errors.New("record not found")

// NotFoundError reports that no book carries the requested isbn.
type NotFoundError struct {
	ISBN string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("There is no book with an isbn '%s'", e.ISBN)
}

// Status returns the HTTP status suited to a missing record.
func (e *NotFoundError) Status() int { return http.StatusNotFound }

// Is lets callers use errors.Is(err, ErrRecordNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrRecordNotFound }

// bookColumns is the column list shared by every SELECT and RETURNING clause.
// Its order must match scanBook.
const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(s rowScanner) (*Book, error) {
	var book Book
	err := s.Scan(
		&book.ISBN,
		&book.AmazonURL,
		&book.Author,
		&book.Language,
		&book.Pages,
		&book.Publisher,
		&book.Title,
		&book.Year,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
// Every method issues exactly one parameterized statement.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// FindOne retrieves a single book by its isbn.
// Returns a *NotFoundError if no book with the given isbn exists.
func (m BookModel) FindOne(ctx context.Context, isbn string) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE isbn = $1`

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, isbn))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, &NotFoundError{ISBN: isbn}
		default:
			return nil, err
		}
	}
	return book, nil
}

// FindAll retrieves every book ordered by title. An empty table yields an
// empty, non-nil slice so it encodes as [] rather than null.
func (m BookModel) FindAll(ctx context.Context) ([]*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY title ASC, isbn ASC`

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// Create inserts a new book and returns the row as stored.
// A duplicate isbn is not special-cased; the driver error is returned as is.
func (m BookModel) Create(ctx context.Context, input CreateBookInput) (*Book, error) {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns

	args := []any{
		input.ISBN,
		input.AmazonURL,
		input.Author,
		input.Language,
		int(input.Pages),
		input.Publisher,
		input.Title,
		int(input.Year),
	}

	return scanBook(m.DB.QueryRowContext(ctx, query, args...))
}

// Update applies the provided fields of input to the book identified by isbn
// and returns the updated row. Fields left nil keep their stored value, and
// the isbn column is never rewritten.
// Returns a *NotFoundError if no book with the given isbn exists.
func (m BookModel) Update(ctx context.Context, isbn string, input UpdateBookInput) (*Book, error) {
	// Placeholders appear in ascending order; sqlite binds $N by first appearance.
	query := `
		UPDATE books
		SET amazon_url = COALESCE($1, amazon_url),
		    author = COALESCE($2, author),
		    language = COALESCE($3, language),
		    pages = COALESCE($4, pages),
		    publisher = COALESCE($5, publisher),
		    title = COALESCE($6, title),
		    year = COALESCE($7, year)
		WHERE isbn = $8
		RETURNING ` + bookColumns

	args := []any{
		input.AmazonURL,
		input.Author,
		input.Language,
		intOrNil(input.Pages),
		input.Publisher,
		input.Title,
		intOrNil(input.Year),
		isbn,
	}

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, &NotFoundError{ISBN: isbn}
		default:
			return nil, err
		}
	}
	return book, nil
}

// Remove deletes the book with the given isbn.
// Returns a *NotFoundError if no matching record exists.
func (m BookModel) Remove(ctx context.Context, isbn string) error {
	query := `DELETE FROM books WHERE isbn = $1`

	// Exec returns a Result that tells us how many rows were affected.
	result, err := m.DB.ExecContext(ctx, query, isbn)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return &NotFoundError{ISBN: isbn}
	}

	return nil
}
