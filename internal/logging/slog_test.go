package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKey  string
		wantText string
	}{
		{
			name:     "non-nil error",
			err:      errors.New("boom"),
			wantKey:  KeyError,
			wantText: "boom",
		},
		{
			name:    "nil error yields empty group",
			err:     nil,
			wantKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Err(tt.err)
			assert.Equal(t, tt.wantKey, attr.Key)
			if tt.err != nil {
				assert.Equal(t, tt.wantText, attr.Value.String())
			}
		})
	}
}

func TestAttributeHelpers(t *testing.T) {
	assert.Equal(t, slog.String(KeyOperation, "fetch_user"), Operation("fetch_user"))
	assert.Equal(t, slog.String(KeyMethod, "GET"), Method("GET"))
	assert.Equal(t, slog.String(KeyPath, "/health"), Path("/health"))
	assert.Equal(t, slog.String(KeyStatus, StatusSuccess), Status(StatusSuccess))
	assert.Equal(t, slog.Duration(KeyDuration, time.Second), Duration(time.Second))
}

func TestWithOperation(t *testing.T) {
	logger := WithOperation(slog.Default(), "create_user")
	assert.NotNil(t, logger)
}
