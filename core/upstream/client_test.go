package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// fixedClient 返回固定响应并记录最后一次请求
func fixedClient(status int, body string, last **http.Request) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if last != nil {
			*last = r
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    r,
		}, nil
	})}
}

func TestClientGetJSON(t *testing.T) {
	var req *http.Request
	c := NewClient("meting", "https://api.example.com/", time.Second)
	c.SetHTTPClient(fixedClient(http.StatusOK, `{"a":{"b":1}}`, &req))

	params := url.Values{}
	params.Set("server", "netease")
	res, err := c.GetJSON(context.Background(), "info", "/song/1", params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Get("a.b").Int())
	assert.Equal(t, "https://api.example.com/song/1?server=netease", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "https://api.example.com", c.BaseURL())
}

func TestClientFailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		client *http.Client
		kind   FailureKind
	}{
		{"bad status", fixedClient(http.StatusBadGateway, `{}`, nil), KindUpstream},
		{"not json", fixedClient(http.StatusOK, `<html>oops</html>`, nil), KindMalformed},
		{"transport", &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})}, KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("gdstudio", "https://api.example.com", time.Second)
			c.SetHTTPClient(tt.client)

			_, err := c.GetJSON(context.Background(), "search", "", nil)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Equal(t, tt.kind == KindTransport, IsTransport(err))

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, "gdstudio", f.Provider)
			assert.Equal(t, "search", f.Op)
		})
	}
}

func TestClientHonoursTimeout(t *testing.T) {
	c := NewClient("meting", "https://api.example.com", 20*time.Millisecond)
	c.SetHTTPClient(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	})})

	_, err := c.GetJSON(context.Background(), "search", "/search", nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, FailureKind(""), KindOf(errors.New("x")))
	assert.False(t, IsTransport(nil))
	assert.False(t, IsTransport(ErrNotFound))
}
