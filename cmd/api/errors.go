// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// handleError is the one place a failure becomes an HTTP status and body.
package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aoideee/books-api/internal/validator"
)

// statusError is implemented by errors that carry their own HTTP status,
// such as *data.NotFoundError and *validator.ValidationError.
type statusError interface {
	error
	Status() int
}

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFromContext(r.Context())),
	)
}

// errorResponse sends a JSON error body with the given status code and message.
// message is a string, or a list of strings for validation failures.
//
//	{"error": {"message": ..., "status": 404}, "message": ...}
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	data := envelope{
		"error":   envelope{"message": message, "status": status},
		"message": message,
	}
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// handleError translates err into a response. Validation failures keep their
// full message list; other classified errors use their own message; anything
// else is a 500.
func (app *applicationDependencies) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validator.ValidationError
	var serr statusError

	switch {
	case errors.As(err, &verr):
		app.errorResponse(w, r, verr.Status(), verr.Messages)
	case errors.As(err, &serr):
		app.errorResponse(w, r, serr.Status(), serr.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
// Internal error details are never exposed to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// notFoundResponse sends a 404 for requests no route matches.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "Not Found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
