package prober

import (
	"net/http"
	"time"

	"github.com/gocolly/colly"
)

// RequestError is a transport level failure: dns, refused connection, tls, timeout.
// Error status codes are not request errors.
type RequestError struct {
	Url string
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

type Response struct {
	StatusCode int
	Body       []byte
	Elapsed    time.Duration
}

type Prober struct {
	transport   http.RoundTripper
	timeout     time.Duration
	maxBodySize int
}

func NewProber(transport http.RoundTripper, timeout time.Duration, maxBodySize int) *Prober {
	return &Prober{
		transport:   transport,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

// Probe fetches the url once with the user agent set verbatim. Elapsed covers the request and the full body.
func (p *Prober) Probe(url, userAgent string) (*Response, error) {
	// a fresh collector per probe, colly refuses to revisit a url
	c := colly.NewCollector()
	c.WithTransport(p.transport)
	c.SetRequestTimeout(p.timeout)
	c.UserAgent = userAgent
	c.ParseHTTPErrorResponse = true
	c.IgnoreRobotsTxt = true
	c.AllowURLRevisit = true
	if p.maxBodySize > 0 {
		c.MaxBodySize = p.maxBodySize
	}

	resp := new(Response)
	c.OnResponse(func(r *colly.Response) {
		resp.StatusCode = r.StatusCode
		resp.Body = r.Body
	})

	t := time.Now()
	err := c.Visit(url)
	resp.Elapsed = time.Since(t)
	if err != nil {
		return nil, &RequestError{Url: url, Err: err}
	}

	return resp, nil
}
