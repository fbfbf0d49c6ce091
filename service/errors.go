package service

import (
	"errors"

	"ui-design-gallery/repository"
)

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrAlreadyExists is returned when a unique constraint rejects the write
	ErrAlreadyExists = repository.ErrDuplicate
	// ErrInvalidInput is returned when request values fail validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrCodeTooShort is returned when pasted markup is below the minimum length
	ErrCodeTooShort = errors.New("code is too short to analyze")
	// ErrUnanalyzable is returned when pasted markup produces no metrics
	ErrUnanalyzable = errors.New("code could not be analyzed")
	// ErrTableMissing is returned when the backing table has not been migrated yet
	ErrTableMissing = errors.New("table missing")
)
