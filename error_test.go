package blockwright_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/blockwright"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := blockwright.Errorf(blockwright.ENOTFOUND, "document %q not found", "42")

	assert.Equal(t, blockwright.ENOTFOUND, blockwright.ErrorCode(err))
	assert.Equal(t, "document \"42\" not found", blockwright.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", blockwright.Errorf(blockwright.ECONFLICT, "exists"))

	assert.Equal(t, blockwright.ECONFLICT, blockwright.ErrorCode(err))
	assert.Equal(t, "exists", blockwright.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, blockwright.EINTERNAL, blockwright.ErrorCode(err))
	assert.Equal(t, "Internal error.", blockwright.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, blockwright.ErrorCode(nil))
	assert.Empty(t, blockwright.ErrorMessage(nil))
}
