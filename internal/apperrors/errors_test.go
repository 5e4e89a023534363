package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"deenha/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("product 7: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("bad body: %w", apperrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("invalid credentials: %w", apperrors.ErrAuthFailure), http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrConflict, http.StatusConflict},
		{fmt.Errorf("fetch products: %w", apperrors.ErrLoadFailure), http.StatusServiceUnavailable},
		{fmt.Errorf("insert: %w", apperrors.ErrMutationFailure), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, apperrors.Status(tc.err), "error: %v", tc.err)
	}
}
