package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for TMDB API operations.
var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrRateLimited  = errors.New("tmdb: rate limited by server")
	ErrBadRequest   = errors.New("tmdb: bad request")
	ErrUnauthorized = errors.New("tmdb: invalid api key")
	ErrServer       = errors.New("tmdb: server error")
	ErrNoAPIKey     = errors.New("tmdb: api key not configured")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "search", "details", "credits"
	Title string // If applicable
	ID    int64  // If applicable
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Title != "":
		return fmt.Sprintf("tmdb %s [%s]: %v", e.Op, e.Title, e.Err)
	case e.ID != 0:
		return fmt.Sprintf("tmdb %s [%d]: %v", e.Op, e.ID, e.Err)
	default:
		return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapSearchError creates an Error for a title lookup.
func wrapSearchError(title string, err error) error {
	return &Error{Op: "search", Title: title, Err: err}
}

// wrapMovieError creates an Error for a movie-scoped operation.
func wrapMovieError(op string, id int64, err error) error {
	return &Error{Op: op, ID: id, Err: err}
}
