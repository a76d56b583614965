package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "bazaar/internal/errors"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name        string
		caller      uuid.UUID
		op          Operation
		expectedErr error
	}{
		{"owner may update", owner, OpUpdate, nil},
		{"owner may delete", owner, OpDelete, nil},
		{"stranger may not update", stranger, OpUpdate, apperrors.ErrNotOwner},
		{"stranger may not delete", stranger, OpDelete, apperrors.ErrNotOwner},
		{"stranger may read", stranger, OpRead, nil},
		{"unauthenticated caller may read", uuid.Nil, OpRead, nil},
		{"unauthenticated caller may not update", uuid.Nil, OpUpdate, apperrors.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(owner, tt.caller, tt.op)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorize_ComparesByValue(t *testing.T) {
	owner := uuid.New()

	// A distinct uuid value parsed from the same canonical string must pass.
	caller, err := uuid.Parse(owner.String())
	assert.NoError(t, err)
	assert.NoError(t, Authorize(owner, caller, OpUpdate))
}
