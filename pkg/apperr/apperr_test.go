package apperr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.NotFound("order %d not found", 7)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "order 7 not found", err.Error())
}

func TestKindOfWrapped(t *testing.T) {
	inner := apperr.Conflict("payment already exists for order 3")
	wrapped := fmt.Errorf("process payment: %w", inner)

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(wrapped))
	assert.True(t, apperr.IsKind(wrapped, apperr.KindConflict))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindNotFound))
}

func TestPlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(fmt.Errorf("boom")))
	assert.False(t, apperr.IsKind(nil, apperr.KindInternal))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "invalid_transition", apperr.KindInvalidTransition.String())
	assert.Equal(t, "forbidden", apperr.KindForbidden.String())
	assert.Equal(t, "internal", apperr.KindInternal.String())
}
