package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errThing = New(NotFound, "THING_NOT_FOUND", "thing not found")

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", errThing, NotFound},
		{"wrapped with fmt", fmt.Errorf("load: %w", errThing), NotFound},
		{"wrapped with cause", Wrap(errThing, errors.New("boom")), NotFound},
		{"validation", Validationf("bad body", nil), Validation},
		{"plain error", errors.New("db down"), Internal},
		{"nil", nil, Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := errors.New("no rows")
	err := fmt.Errorf("find: %w", Wrap(errThing, cause))

	assert.ErrorIs(t, err, errThing)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "find: thing not found: no rows", err.Error())
}

func TestIsDistinguishesCodes(t *testing.T) {
	other := New(NotFound, "OTHER_NOT_FOUND", "other not found")
	assert.NotErrorIs(t, errThing, other)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CONFLICT", Conflict.String())
	assert.Equal(t, "INTERNAL_ERROR", Internal.String())
}
