// Package repository contains the data access layer abstractions.
// Implementations live in subpackages (postgres here); business logic stays
// in the service layer.
package repository

import "errors"

// ErrDuplicateFlowFile marks a filename-uniqueness rejection from the
// store. The loader pre-checks the filename before parsing, but two
// concurrent imports can both pass that check; the constraint is the final
// guard and its violation must surface as a duplicate, not a generic
// database error.
var ErrDuplicateFlowFile = errors.New("flow file already imported")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
