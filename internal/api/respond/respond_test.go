package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/model"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: userId is required", model.ErrValidation), http.StatusBadRequest, "validation error: userId is required"},
		{fmt.Errorf("profile x: %w", model.ErrNotFound), http.StatusNotFound, "profile x: not found"},
		{fmt.Errorf("%w: embed: boom", model.ErrUpstream), http.StatusInternalServerError, "a dependency failed; try again later"},
		{errors.New("surprise"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		WriteServiceError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

		require.Equal(t, tt.status, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, ErrorResponse{Error: tt.message, Code: tt.status}, body)
	}
}
