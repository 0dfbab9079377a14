package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPRequest represents a test HTTP request
type HTTPRequest struct {
	Method      string
	Path        string
	Body        interface{}
	Form        *MultipartForm
	Headers     map[string]string
	AccessToken string
}

// MultipartForm is a multipart/form-data body with an optional file part
type MultipartForm struct {
	Fields   map[string]string
	FileName string
	FileData []byte
	FilePart string // defaults to "resume"
}

// HTTPResponse wraps the HTTP response for testing
type HTTPResponse struct {
	*httptest.ResponseRecorder
	t *testing.T
}

// DoRequest performs an HTTP request against the test server
func DoRequest(t *testing.T, e *echo.Echo, req HTTPRequest) *HTTPResponse {
	t.Helper()

	var (
		body        io.Reader
		contentType = echo.MIMEApplicationJSON
	)
	switch {
	case req.Form != nil:
		buf, ct := encodeMultipart(t, req.Form)
		body, contentType = buf, ct
	case req.Body != nil:
		jsonBody, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(jsonBody)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	httpReq.Header.Set(echo.HeaderContentType, contentType)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.AccessToken != "" {
		httpReq.Header.Set(echo.HeaderAuthorization, "Bearer "+req.AccessToken)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httpReq)

	return &HTTPResponse{ResponseRecorder: rec, t: t}
}

func encodeMultipart(t *testing.T, form *MultipartForm) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range form.Fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if form.FileName != "" {
		part := form.FilePart
		if part == "" {
			part = "resume"
		}
		fw, err := w.CreateFormFile(part, form.FileName)
		require.NoError(t, err)
		_, err = fw.Write(form.FileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

// AssertStatus asserts the response status code
func (r *HTTPResponse) AssertStatus(expected int) *HTTPResponse {
	assert.Equal(r.t, expected, r.Code, "unexpected status code, body: %s", r.Body.String())
	return r
}

// AssertHeader asserts a response header value
func (r *HTTPResponse) AssertHeader(key, expected string) *HTTPResponse {
	assert.Equal(r.t, expected, r.Header().Get(key), "header %s mismatch", key)
	return r
}

// AssertJSONPath asserts a specific path in the JSON response
func (r *HTTPResponse) AssertJSONPath(path string, expected interface{}) *HTTPResponse {
	value := getJSONPath(r.GetJSON(), path)
	assert.Equal(r.t, expected, value, "JSON path %s mismatch", path)
	return r
}

// AssertJSONPathExists asserts a path exists in the JSON response
func (r *HTTPResponse) AssertJSONPathExists(path string) *HTTPResponse {
	value := getJSONPath(r.GetJSON(), path)
	assert.NotNil(r.t, value, "JSON path %s does not exist", path)
	return r
}

// AssertJSONError asserts the response contains an error with expected code
func (r *HTTPResponse) AssertJSONError(code string, message string) *HTTPResponse {
	body, _ := r.GetJSON().(map[string]interface{})
	errorObj, ok := body["error"].(map[string]interface{})
	require.True(r.t, ok, "response does not contain error object: %s", r.Body.String())

	assert.Equal(r.t, code, errorObj["code"], "error code mismatch")
	if message != "" {
		assert.Equal(r.t, message, errorObj["message"], "error message mismatch")
	}
	return r
}

// GetJSON parses the response body as JSON
func (r *HTTPResponse) GetJSON() interface{} {
	var result interface{}
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &result))
	return result
}

// getJSONPath gets a value from nested JSON using dot notation
// numeric segments index into arrays (e.g. "data.0.userId")
func getJSONPath(data interface{}, path string) interface{} {
	current := data
	for _, key := range strings.Split(path, ".") {
		if key == "" {
			continue
		}
		switch v := current.(type) {
		case map[string]interface{}:
			current = v[key]
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			current = v[i]
		default:
			return nil
		}
	}
	return current
}
