package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/applico/orchard-advisor/internal/orchard"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteGridError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: rows=0 cols=3", orchard.ErrInvalidDimension), http.StatusBadRequest},
		{fmt.Errorf("%w: 50000x50000 is 2500000000 trees, max 10000", orchard.ErrGridTooLarge), http.StatusBadRequest},
		{fmt.Errorf("%w: nil random source", orchard.ErrInvalidGridConfig), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeGridError(c, tt.err)

		assert.Equal(t, tt.want, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), tt.err.Error())
	}
}
