package robots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cacheMock "github.com/IliaW/bots-checker/internal/cache/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingRoundTripper struct{}

func (rt *failingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return nil, errors.New("network must not be used")
}

func Test_FetchPolicy(t *testing.T) {
	testSet := []struct {
		name            string
		statusCode      int
		body            string
		expectedPolicy  bool
		expectedBlocked bool
	}{
		{name: "robots.txt found", statusCode: http.StatusOK, body: "User-agent: *\nDisallow: /",
			expectedPolicy: true, expectedBlocked: true},
		{name: "robots.txt with syntax errors", statusCode: http.StatusOK,
			body: "User-agent: *\nCrawl-delay: abc\nDisallow: /\n", expectedPolicy: true, expectedBlocked: true},
		{name: "robots.txt not found", statusCode: http.StatusNotFound, body: "not found"},
		{name: "server error", statusCode: http.StatusInternalServerError, body: "User-agent: *\nDisallow: /"},
		{name: "forbidden", statusCode: http.StatusForbidden, body: "User-agent: *\nDisallow: /"},
		{name: "other success status", statusCode: http.StatusNoContent},
	}
	for _, test := range testSet {
		t.Run(test.name, func(tt *testing.T) {
			var requestedPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestedPath = r.URL.Path
				w.WriteHeader(test.statusCode)
				_, _ = w.Write([]byte(test.body))
			}))
			defer srv.Close()

			f := NewFetcher(&http.Client{Timeout: time.Second}, nil)
			policy := f.FetchPolicy(context.Background(), srv.URL+"/some/page?x=1")

			assert.Equal(tt, "/robots.txt", requestedPath)
			assert.Equal(tt, test.expectedPolicy, policy != nil)
			assert.Equal(tt, test.expectedBlocked, !Allowed(policy, "GPTBot/1.1", srv.URL+"/some/page"))
		})
	}
}

func Test_FetchPolicy_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewFetcher(&http.Client{Timeout: time.Second}, nil)

	assert.Nil(t, f.FetchPolicy(context.Background(), url))
}

func Test_FetchPolicy_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewFetcher(&http.Client{Timeout: 50 * time.Millisecond}, nil)

	assert.Nil(t, f.FetchPolicy(context.Background(), srv.URL))
}

func Test_FetchPolicy_FromCache(t *testing.T) {
	cache := cacheMock.NewCachedClient(t)
	cache.On("GetRobotsFile", "https://example.com/page").Return([]byte("User-agent: *\nDisallow: /"), true)

	f := NewFetcher(&http.Client{Transport: &failingRoundTripper{}}, cache)
	policy := f.FetchPolicy(context.Background(), "https://example.com/page")

	require.NotNil(t, policy)
	assert.False(t, Allowed(policy, "GPTBot/1.1", "https://example.com/page"))
}

func Test_FetchPolicy_SavesToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nAllow: /"))
	}))
	defer srv.Close()

	cache := cacheMock.NewCachedClient(t)
	cache.On("GetRobotsFile", mock.Anything).Return(nil, false)
	cache.On("SaveRobotsFile", srv.URL, []byte("User-agent: *\nAllow: /")).Once()

	f := NewFetcher(&http.Client{Timeout: time.Second}, cache)

	assert.NotNil(t, f.FetchPolicy(context.Background(), srv.URL))
}

func Test_FetchPolicy_NotFoundIsNotCached(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cache := cacheMock.NewCachedClient(t)
	cache.On("GetRobotsFile", mock.Anything).Return(nil, false)

	f := NewFetcher(&http.Client{Timeout: time.Second}, cache)

	assert.Nil(t, f.FetchPolicy(context.Background(), srv.URL))
	cache.AssertNotCalled(t, "SaveRobotsFile", mock.Anything, mock.Anything)
}
