package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipewatch/pipewatch/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"title":"hello"}`))
		case "/broken":
			_, _ = w.Write([]byte(`{"title":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := &http.Client{Transport: &userAgentTransport{base: http.DefaultTransport}}

	t.Run("decodes the body and sets the user agent", func(t *testing.T) {
		var out struct {
			Title string `json:"title"`
		}
		require.NoError(t, GetJSON(context.Background(), client, srv.URL+"/ok", &out))
		assert.Equal(t, "hello", out.Title)
		assert.Equal(t, constant.UserAgent, agent)
	})

	t.Run("reports non-200 statuses", func(t *testing.T) {
		var out map[string]any
		err := GetJSON(context.Background(), client, srv.URL+"/missing", &out)

		var status *StatusError
		require.True(t, errors.As(err, &status))
		assert.Equal(t, http.StatusNotFound, status.Status)
	})

	t.Run("reports malformed bodies", func(t *testing.T) {
		var out map[string]any
		assert.Error(t, GetJSON(context.Background(), client, srv.URL+"/broken", &out))
	})
}
