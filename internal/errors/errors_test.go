package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PipelineError
		expected string
	}{
		{
			name:     "with stage",
			err:      New(CodeInputNotFound, "load", "input file not found: raw.csv"),
			expected: "[INPUT_NOT_FOUND] load: input file not found: raw.csv",
		},
		{
			name:     "without stage",
			err:      New(CodeConfig, "", "output dir is empty"),
			expected: "[CONFIG_ERROR] output dir is empty",
		},
		{
			name:     "nil receiver",
			err:      nil,
			expected: "unknown pipeline error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeWritePermission, "write", "cannot write output", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestCodeOf(t *testing.T) {
	err := New(CodeEmptyDataset, "missing-values", "all rows removed")
	wrapped := fmt.Errorf("run failed: %w", err)

	assert.Equal(t, CodeEmptyDataset, CodeOf(wrapped))
	assert.Equal(t, Code(""), CodeOf(stderrors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestStageOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeTransform, "outlier-cap", "bad value"))

	assert.Equal(t, "outlier-cap", StageOf(err))
	assert.Equal(t, "", StageOf(stderrors.New("plain")))
}

func TestIsCode(t *testing.T) {
	err := Newf(CodeParse, "load", "row %d has %d fields, want %d", 3, 5, 10)

	assert.True(t, IsCode(err, CodeParse))
	assert.False(t, IsCode(err, CodeTransform))
}
