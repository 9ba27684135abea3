package catapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"file":"https:\\/\\/purr.example\\/i\\/cat.jpg"}`))
	}))
	defer srv.Close()

	url, err := New(srv.URL).RandomImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://purr.example/i/cat.jpg", url)
}

func TestRandomImage_Errors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) { http.Error(w, "nope", http.StatusBadGateway) },
		"json":   func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) },
		"empty":  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) },
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := New(srv.URL).RandomImage(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRandomImage_TruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 100\r\n\r\n{\"file\"")
		_ = buf.Flush()
		_ = conn.Close()
	}))
	defer srv.Close()

	_, err := New(srv.URL).RandomImage(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "read body")
	assert.NotContains(t, err.Error(), "decode")
}
