// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler returns its error instead of writing it; the handle adapter
// passes every error to handleError.
package main

import (
	"net/http"

	"github.com/aoideee/books-api/internal/data"
)

// appHandler is a handler that reports failure by returning an error.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts h to net/http, sending any returned error to handleError.
func (app *applicationDependencies) handle(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			app.handleError(w, r, err)
		}
	}
}

// healthcheckHandler handles GET /healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) error {
	return app.writeJSON(w, http.StatusOK, envelope{
		"status":      "available",
		"environment": app.config.Environment,
		"version":     appVersion,
	}, nil)
}

// listBooksHandler handles GET /books.
// It returns every book, ordered by title.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) error {
	books, err := app.models.Books.FindAll(r.Context())
	if err != nil {
		return err
	}

	return app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
}

// showBookHandler handles GET /books/:isbn.
// Responds 404 if no book with that isbn exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) error {
	book, err := app.models.Books.FindOne(r.Context(), app.readISBNParam(r))
	if err != nil {
		return err
	}

	return app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
}

// createBookHandler handles POST /books.
// The body has already passed the new-book schema; the stored book is
// returned with a 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) error {
	var input data.CreateBookInput
	if err := app.readJSON(w, r, &input); err != nil {
		return err
	}

	book, err := app.models.Books.Create(r.Context(), input)
	if err != nil {
		return err
	}

	return app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
}

// updateBookHandler handles PUT /books/:isbn.
// Only the fields present in the body are changed. An isbn in the body is
// ignored; the path names the book. Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) error {
	var input data.UpdateBookInput
	if err := app.readJSON(w, r, &input); err != nil {
		return err
	}

	book, err := app.models.Books.Update(r.Context(), app.readISBNParam(r), input)
	if err != nil {
		return err
	}

	return app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
}

// deleteBookHandler handles DELETE /books/:isbn.
// Responds 404 if no book with that isbn exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) error {
	err := app.models.Books.Remove(r.Context(), app.readISBNParam(r))
	if err != nil {
		return err
	}

	return app.writeJSON(w, http.StatusOK, envelope{"message": "Book deleted"}, nil)
}
