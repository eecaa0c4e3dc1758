package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/response"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	msgs := response.Messages{
		BadRequest: "Invalid product ID",
		NotFound:   "Product not found",
		Internal:   "Failed to fetch product",
	}

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"Validation", &domain.ValidationError{Field: "priceMin", Reason: "must be a number"}, http.StatusBadRequest, `{"error":"Invalid product ID"}`},
		{"InvalidID", fmt.Errorf("repo: %w", domain.ErrInvalidID), http.StatusBadRequest, `{"error":"Invalid product ID"}`},
		{"NotFound", fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound, `{"error":"Product not found"}`},
		{"Internal", errors.New("socket closed"), http.StatusInternalServerError, `{"error":"Failed to fetch product"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			status := response.FromError(rec, tt.err, msgs)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "socket")
		})
	}
}
