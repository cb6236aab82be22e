// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/books-api/internal/validator"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → rateLimit → trimTrailingSlash → router
//
// Current endpoints:
//
//	GET    /healthcheck   – service status
//	GET    /books         – list all books, ordered by title
//	GET    /books/:isbn   – retrieve a single book
//	POST   /books         – validate against the new-book schema, then create
//	PUT    /books/:isbn   – validate against the update-book schema, then update
//	DELETE /books/:isbn   – delete a book
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()
	// Trailing slashes are served in place by trimTrailingSlash, not redirected.
	router.RedirectTrailingSlash = false

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.handle(app.healthcheckHandler))

	router.HandlerFunc(http.MethodGet, "/books", app.handle(app.listBooksHandler))
	router.HandlerFunc(http.MethodGet, "/books/:isbn", app.handle(app.showBookHandler))
	router.HandlerFunc(http.MethodPost, "/books", app.validateBody(validator.NewBook, app.handle(app.createBookHandler)))
	router.HandlerFunc(http.MethodPut, "/books/:isbn", app.validateBody(validator.UpdateBook, app.handle(app.updateBookHandler)))
	router.HandlerFunc(http.MethodDelete, "/books/:isbn", app.handle(app.deleteBookHandler))

	return app.recoverPanic(app.logRequest(app.rateLimit(app.trimTrailingSlash(router))))
}
