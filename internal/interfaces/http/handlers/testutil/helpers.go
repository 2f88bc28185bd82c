// Package testutil builds gin contexts for handler tests without a router.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext marshals body as JSON when it is non-nil.
func NewTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	if body == nil {
		return newContext(method, target, nil)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return newContext(method, target, bytes.NewReader(payload))
}

// NewRawTestContext sends body verbatim, for malformed or unknown-key payloads.
func NewRawTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, bytes.NewBufferString(body))
}

func newContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

// SetAuthContext stores what RequireAuth would for a signed-in admin.
func SetAuthContext(c *gin.Context, adminID uint) {
	c.Set(constants.ContextKeyUserID, adminID)
	c.Set(constants.ContextKeyUserRole, "admin")
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse is the decoded error and detail envelope with data left raw.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewMockLogger() logger.Interface {
	return logger.Nop()
}
