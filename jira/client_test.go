package jira

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(r *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// brokenReader always fails
type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) { return 0, errors.New("fail") }
func (brokenReader) Close() error               { return nil }

func jsonReply(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json;charset=UTF-8"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// newTestClient builds a client whose transport is fn.
func newTestClient(t *testing.T, server string, fn roundTripperFunc) *Client {
	t.Helper()

	c, err := NewClient(server, nil, WithHTTPClient(&http.Client{Transport: fn}))
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("builds base URL with default version", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("https://jira.atlassian.com/", nil)
		require.NoError(t, err)

		assert.Equal(t, "https://jira.atlassian.com/rest/api/latest/", c.BaseURL())
		assert.NotNil(t, c.Client)
		assert.NotNil(t, c.auth)
		assert.NotNil(t, c.logger)
		assert.Equal(t, defaultTimeout, c.Client.Timeout)
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("https://jira.example.com", NewBearerAuth("t"),
			WithAPIVersion("/2/"),
			WithTimeout(3*time.Second),
			WithSkipTLSVerify(true),
			WithUserAgent(" jirarest "),
			WithLogger(slog.New(slog.DiscardHandler)),
		)
		require.NoError(t, err)

		assert.Equal(t, "https://jira.example.com/rest/api/2/", c.BaseURL())
		assert.Equal(t, 3*time.Second, c.Client.Timeout)
		assert.Equal(t, "jirarest", c.userAgent)

		tr, ok := c.Client.Transport.(*http.Transport)
		require.True(t, ok)
		assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("empty api version keeps latest", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("https://jira.example.com", nil, WithAPIVersion(""))
		require.NoError(t, err)
		assert.Equal(t, "https://jira.example.com/rest/api/latest/", c.BaseURL())
	})

	t.Run("rejects empty server URL", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient("  ", nil)
		assert.EqualError(t, err, "missing server URL")
	})

	t.Run("rejects relative server URL", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient("jira.example.com", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be absolute")
	})
}

func TestRelativeResource(t *testing.T) {
	t.Parallel()

	c, err := NewClient("http://h", nil)
	require.NoError(t, err)

	t.Run("strips base URL prefix", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "issue/FOO", c.RelativeResource("http://h/rest/api/latest/issue/FOO"))
	})

	t.Run("keeps relative resource", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "issue/FOO", c.RelativeResource("issue/FOO"))
	})

	t.Run("passes other absolute URLs through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "http://other/rest/api/latest/issue/FOO", c.RelativeResource("http://other/rest/api/latest/issue/FOO"))
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("requests relative resource against base URL", func(t *testing.T) {
		t.Parallel()

		var gotURL, gotAccept string
		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			gotURL = r.URL.String()
			gotAccept = r.Header.Get("Accept")
			assert.Equal(t, http.MethodGet, r.Method)
			return jsonReply(http.StatusOK, `{"key":"FOO"}`), nil
		})

		resp, err := c.Get(context.Background(), "issue/FOO")
		require.NoError(t, err)

		assert.Equal(t, "http://h/rest/api/latest/issue/FOO", gotURL)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, resp.IsJSON())
		assert.Same(t, c, resp.Client())
	})

	t.Run("absolute resource with base prefix requests the same path", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			gotURL = r.URL.String()
			return jsonReply(http.StatusOK, `{}`), nil
		})

		_, err := c.Get(context.Background(), "http://h/rest/api/latest/issue/FOO")
		require.NoError(t, err)
		assert.Equal(t, "http://h/rest/api/latest/issue/FOO", gotURL)
	})

	t.Run("foreign absolute URL is passed through", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			gotURL = r.URL.String()
			return jsonReply(http.StatusOK, `{}`), nil
		})

		_, err := c.Get(context.Background(), "http://other/rest/api/2/issueType/1")
		require.NoError(t, err)
		assert.Equal(t, "http://other/rest/api/2/issueType/1", gotURL)
	})

	t.Run("applies auth and user agent", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotUA string
		c, err := NewClient("http://h", NewBearerAuth("tok"),
			WithUserAgent("jirarest/1"),
			WithHTTPClient(&http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				gotAuth = r.Header.Get("Authorization")
				gotUA = r.Header.Get("User-Agent")
				return jsonReply(http.StatusOK, `{}`), nil
			})}),
		)
		require.NoError(t, err)

		_, err = c.Get(context.Background(), "issue/FOO")
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "jirarest/1", gotUA)
	})

	t.Run("error status is passed through", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			return jsonReply(http.StatusNotFound, `{"errorMessages":["Issue Does Not Exist"]}`), nil
		})

		resp, err := c.Get(context.Background(), "issue/NOPE")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.True(t, resp.IsJSON())
	})

	t.Run("non-JSON reply has no document", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"text/html"}},
				Body:       io.NopCloser(bytes.NewBufferString("<html>login</html>")),
			}, nil
		})

		resp, err := c.Get(context.Background(), "issue/FOO")
		require.NoError(t, err)
		assert.False(t, resp.IsJSON())
		assert.Nil(t, resp.Document)
		assert.Equal(t, "<html>login</html>", string(resp.Body))
	})

	t.Run("returns error on transport failure", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		resp, err := c.Get(context.Background(), "issue/FOO")
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "do request")
	})

	t.Run("returns error on body read failure", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: brokenReader{}}, nil
		})

		_, err := c.Get(context.Background(), "issue/FOO")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read response")
	})

	t.Run("returns error on invalid resource", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			t.Fatal("no request expected")
			return nil, nil
		})

		_, err := c.Get(context.Background(), "%%%")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse resource")
	})

	t.Run("returns error on malformed JSON", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
			return jsonReply(http.StatusOK, `{"key":`), nil
		})

		_, err := c.Get(context.Background(), "issue/FOO")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse response")
	})
}

func TestGetWrappers(t *testing.T) {
	t.Parallel()

	var paths []string
	c := newTestClient(t, "http://h", func(r *http.Request) (*http.Response, error) {
		paths = append(paths, r.URL.Path)
		return jsonReply(http.StatusOK, `{"key":"JRA-1","name":"Bug"}`), nil
	})
	ctx := context.Background()

	issue, err := c.GetIssue(ctx, "JRA-1")
	require.NoError(t, err)
	key, err := issue.Key()
	require.NoError(t, err)
	assert.Equal(t, "JRA-1", key)

	it, err := c.GetIssueType(ctx, "1")
	require.NoError(t, err)
	name, err := it.Name()
	require.NoError(t, err)
	assert.Equal(t, "Bug", name)

	_, err = c.GetIssueTypeByResource(ctx, "http://h/rest/api/latest/issueType/3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/rest/api/latest/issue/JRA-1",
		"/rest/api/latest/issueType/1",
		"/rest/api/latest/issueType/3",
	}, paths)
}

func TestNewHTTPTransport(t *testing.T) {
	t.Parallel()

	tr := newHTTPTransport(false)
	require.NotNil(t, tr.TLSClientConfig)
	assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
	assert.Greater(t, tr.MaxIdleConns, 0)

	hc := newHTTPClient(0, false)
	assert.Equal(t, defaultTimeout, hc.Timeout)
}
