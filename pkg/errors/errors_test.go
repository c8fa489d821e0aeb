// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, code matching and details

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "missing_config",
			code:    errors.ErrMissingConfig,
			message: "rootDir and subpackageDir are required",
			wantStr: "[MISSING_CONFIG] rootDir and subpackageDir are required",
		},
		{
			name:    "sync_failed",
			code:    errors.ErrSyncFailed,
			message: "rsync exited",
			wantStr: "[SYNC_FAILED] rsync exited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrRewriteFailed, "failed to modify file %s", "/out/app.json")
	assert.Equal(t, "failed to modify file /out/app.json", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrRewriteFailed, "failed to modify file")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrRewriteFailed, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[REWRITE_FAILED] failed to modify file: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrRewriteFailed, "unused"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrRewriteFailed, "unused %d", 1))
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrSyncFailed, "sync %s -> %s", "/a", "/b")
		assert.Equal(t, "sync /a -> /b", err.Message)
	})
}

func TestDetails(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := errors.New(errors.ErrSyncFailed, "sync failed").
		WithDetail(errors.DetailError, cause).
		WithDetails(map[string]interface{}{
			errors.DetailExitCode: 1,
			errors.DetailCommand:  "rsync -avz --quiet --delete /out /native/pkg",
		})

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, cause, details[errors.DetailError])
	assert.Equal(t, 1, details[errors.DetailExitCode])
	assert.Contains(t, details[errors.DetailCommand], "rsync")

	t.Run("nil_details_map_is_initialised", func(t *testing.T) {
		e := &errors.PipelineError{Code: errors.ErrSyncFailed}
		e.WithDetail("k", "v")
		assert.Equal(t, "v", e.Details["k"])
	})
}

func TestCodeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("run failed: %w", errors.New(errors.ErrRewriteFailed, "boom"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrRewriteFailed))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrSyncFailed))
	assert.Equal(t, errors.ErrRewriteFailed, errors.GetErrorCode(wrapped))

	plain := stderrors.New("plain")
	assert.False(t, errors.IsErrorCode(plain, errors.ErrRewriteFailed))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrSyncFailed, "first")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrSyncFailed, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrRewriteFailed, "first")))
}
