package main

import (
	"errors"
	"net/http"
)

// Kinds of failures produced by the catalog. A missing record is not
// an error: lookups report it through a boolean result.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// CatalogError carries the kind of a catalog failure, a message safe to
// show to clients and the underlying cause if any.
type CatalogError struct {
	Kind    error
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is makes errors.Is match the error kind.
func (e *CatalogError) Is(target error) bool {
	return e.Kind == target
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func validationError(message string) error {
	return &CatalogError{Kind: ErrValidation, Message: message}
}

func conflictError(message string) error {
	return &CatalogError{Kind: ErrConflict, Message: message}
}

func storageError(message string, err error) error {
	return &CatalogError{Kind: ErrStorage, Message: message, Err: err}
}

// StatusFromError maps an error returned by the catalog to its http status code.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message to expose for err. Storage and
// unexpected failures never leak their details, the fallback is used.
func ClientMessage(err error, fallback string) string {
	var ce *CatalogError
	if errors.As(err, &ce) && ce.Kind != ErrStorage {
		return ce.Message
	}
	return fallback
}
