package simulate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	err := NotFoundError("User not found")
	assert.Equal(t, "User not found", err.Error())

	err = InternalError("Simulated internal server error")
	assert.Equal(t, "Simulated internal server error", err.Error())
}

func TestAsFailure(t *testing.T) {
	failure, ok := AsFailure(NotFoundError("gone"))
	require.True(t, ok)
	assert.Equal(t, KindNotFound, failure.Kind)

	// Wrapped failures still unwrap.
	wrapped := fmt.Errorf("handling request: %w", InternalError("boom"))
	failure, ok = AsFailure(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindInternal, failure.Kind)

	failure, ok = AsFailure(errors.New("plain"))
	assert.False(t, ok)
	assert.Nil(t, failure)

	failure, ok = AsFailure(nil)
	assert.False(t, ok)
	assert.Nil(t, failure)
}
