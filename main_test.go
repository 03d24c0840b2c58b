package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IliaW/bots-checker/internal/registry"
	"github.com/stretchr/testify/assert"
)

func Test_run_Usage(t *testing.T) {
	testSet := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "short help", args: []string{"-h"}},
		{name: "long help", args: []string{"--help"}},
		{name: "help with url", args: []string{"-h", "https://example.com"}},
	}
	for _, test := range testSet {
		t.Run(test.name, func(tt *testing.T) {
			var out bytes.Buffer
			code := run(test.args, &out)

			assert.Equal(tt, 0, code)
			usage := out.String()
			assert.Contains(tt, usage, "AI Bots Testing Tool")
			assert.Contains(tt, usage, "Usage:")
			assert.Contains(tt, usage, "Examples:")
			assert.Contains(tt, usage, "https://example.com")
			for _, b := range registry.Bots() {
				assert.Contains(tt, usage, b.Name)
			}
			assert.Contains(tt, usage, "- Anthropic (ClaudeBot, Claude-User)\n")
		})
	}
}

func Test_run_InvalidInput(t *testing.T) {
	testSet := []struct {
		name             string
		args             []string
		expectedFragment string
	}{
		{name: "ftp scheme", args: []string{"ftp://x.com"}, expectedFragment: "Error: Invalid URL 'ftp://x.com'"},
		{name: "no scheme", args: []string{"example.com"}, expectedFragment: "Example: "},
		{name: "unknown flag", args: []string{"--verbose", "https://example.com"}, expectedFragment: "Usage:"},
		{name: "unknown format", args: []string{"--format", "xml", "https://example.com"},
			expectedFragment: "unsupported output format 'xml'"},
	}
	for _, test := range testSet {
		t.Run(test.name, func(tt *testing.T) {
			var out bytes.Buffer
			code := run(test.args, &out)

			assert.Equal(tt, 1, code)
			assert.Contains(tt, out.String(), test.expectedFragment)
		})
	}
}

func Test_run_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		_, _ = w.Write([]byte("<title>Home</title>"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	code := run([]string{srv.URL + "/"}, &out)

	assert.Equal(t, 0, code)
	assert.Equal(t, 7, strings.Count(out.String(), ":\tBLOCKED\n"))
}

func Test_run_UnreachableHostStillExitsZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	code := run([]string{"--format", "json", url}, &out)

	assert.Equal(t, 0, code)
	assert.Equal(t, 7, strings.Count(out.String(), "\"error\":"))
	assert.Equal(t, 7, strings.Count(out.String(), "\n"))
}
