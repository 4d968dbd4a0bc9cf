package apperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOfTypedErrors(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindInternal, KindOf(Internal(errors.New("boom"), "unexpected")))
}

func TestKindOfUntypedErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("order %s not found", "42"), "service layer")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsConflict(err))
}

func TestInternalKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "database unavailable")

	assert.Equal(t, "database unavailable", err.Message())
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestValidationFormatsMessage(t *testing.T) {
	err := Validation("limit must not exceed %d", 100)
	assert.Equal(t, "limit must not exceed 100", err.Message())
}
