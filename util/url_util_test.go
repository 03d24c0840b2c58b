package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsValidUrl(t *testing.T) {
	testSet := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "https url", url: "https://example.com", expected: true},
		{name: "http url with path and query", url: "http://example.com/a/b?c=d", expected: true},
		{name: "upper case scheme", url: "HTTPS://example.com", expected: true},
		{name: "url with port", url: "http://127.0.0.1:8080/page", expected: true},
		{name: "ftp scheme", url: "ftp://x.com", expected: false},
		{name: "no scheme", url: "example.com", expected: false},
		{name: "no host", url: "https://", expected: false},
		{name: "only path", url: "https:///path", expected: false},
		{name: "empty string", url: "", expected: false},
		{name: "unparsable url", url: "http://[::1", expected: false},
		{name: "control character", url: "http://exa\x7fmple.com", expected: false},
	}
	for _, test := range testSet {
		t.Run(test.name, func(tt *testing.T) {
			assert.Equal(tt, test.expected, IsValidUrl(test.url))
		})
	}
}

func Test_GetRobotsUrl(t *testing.T) {
	testSet := []struct {
		name        string
		url         string
		expected    string
		expectedErr bool
	}{
		{name: "path and query are dropped", url: "https://example.com/blog/post?id=1#top",
			expected: "https://example.com/robots.txt"},
		{name: "port is kept", url: "http://127.0.0.1:8080/page", expected: "http://127.0.0.1:8080/robots.txt"},
		{name: "no scheme", url: "example.com/page", expectedErr: true},
	}
	for _, test := range testSet {
		t.Run(test.name, func(tt *testing.T) {
			robotsUrl, err := GetRobotsUrl(test.url)
			if test.expectedErr {
				assert.Error(tt, err)
				return
			}
			assert.NoError(tt, err)
			assert.Equal(tt, test.expected, robotsUrl)
		})
	}
}

func Test_GetDomain(t *testing.T) {
	domain, err := GetDomain("https://example.com:8443/test")
	assert.NoError(t, err)
	assert.Equal(t, "example.com", domain)

	_, err = GetDomain("/relative/path")
	assert.Error(t, err)
}
