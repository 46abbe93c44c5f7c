package entity

import "errors"

// Виды ошибок, которые различает транспортный слой.
// Конкретная причина оборачивается через fmt.Errorf("%w: %w", kind, cause).
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUpstream    = errors.New("media host failure")
	ErrPersistence = errors.New("persistence failure")
)
