package inventory

import (
	"errors"
	"fmt"
)

// Kind names an entity kind in diagnostics.
type Kind string

const (
	KindTag         Kind = "tag"
	KindCompartment Kind = "compartment"
	KindContainer   Kind = "container"
	KindItem        Kind = "item"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("inventory: not found")

// NotFoundError reports a reference to an entity that does not exist.
type NotFoundError struct {
	Kind Kind
	ID   uint32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind Kind, id uint32) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ErrIDsExhausted is returned once a kind has used every id a uint32 can hold.
var ErrIDsExhausted = errors.New("inventory: ids exhausted")

// ExhaustedError names the kind whose id counter ran out.
type ExhaustedError struct {
	Kind Kind
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no %s ids left", e.Kind)
}

// Is lets errors.Is(err, ErrIDsExhausted) match.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrIDsExhausted
}
