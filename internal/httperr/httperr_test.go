package httperr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHelpersWriteEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code    string
		write   func(*gin.Context, string)
		status  int
		aborted bool
	}{
		{"NotFound", func(c *gin.Context, code string) { NotFound(c, code, "nope") }, http.StatusNotFound, false},
		{"Forbidden", func(c *gin.Context, code string) { Forbidden(c, code, "nope") }, http.StatusForbidden, true},
		{"Unauthorized", func(c *gin.Context, code string) { Unauthorized(c, code, "nope") }, http.StatusUnauthorized, true},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tc.write(c, tc.code)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.aborted, c.IsAborted())
			assert.JSONEq(t, `{"code":"`+tc.code+`","message":"nope"}`, w.Body.String())
		})
	}
}
