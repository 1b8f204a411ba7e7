package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"bookly/internal/config"
	"bookly/internal/store"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLiteConfig returns a configuration pointing at a fresh sqlite file in a temp dir.
func SQLiteConfig(t testing.TB) config.Config {
	t.Helper()
	return config.Config{
		Addr:         ":0",
		DatabaseURL:  filepath.Join(t.TempDir(), "books.db"),
		DBDriver:     config.DriverSQLite,
		QueryTimeout: 5 * time.Second,
		MaxConns:     1,
		LogLevel:     "error",
		LogFormat:    "text",
	}
}

// OpenSQLiteStore opens a store on a fresh sqlite database and closes it when the test ends.
func OpenSQLiteStore(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), SQLiteConfig(t))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

// NewRequest creates a new HTTP request for testing. A string body is sent verbatim,
// anything else is marshalled to JSON.
func NewRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// Serve runs r through h and returns the recorder.
func Serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeJSON decodes the recorded body into dst.
func DecodeJSON(t testing.TB, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), "body: %s", w.Body.String())
}

// ErrorCode extracts error.code from an error envelope.
func ErrorCode(t testing.TB, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	DecodeJSON(t, w, &body)
	return body.Error.Code
}
