package auth

import (
	"github.com/google/uuid"

	apperrors "bazaar/internal/errors"
)

// Operation classifies what a caller wants to do with a resource.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Authorize decides whether caller may perform op on a resource owned by
// owner. Reads are open to everyone, authenticated or not. Mutations require
// the caller to be the owner; ids are compared by value.
//
// Callers must check that the resource exists before asking for a decision: a
// missing resource is a not-found condition, never a forbidden one.
func Authorize(owner, caller uuid.UUID, op Operation) error {
	if op == OpRead {
		return nil
	}
	if owner == caller {
		return nil
	}
	return apperrors.ErrNotOwner
}
