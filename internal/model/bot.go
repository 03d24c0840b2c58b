package model

import (
	"math"
	"net/http"
	"time"
)

type Bot struct {
	Company   string `json:"company"`
	Name      string `json:"name"`
	UserAgent string `json:"user_agent"`
}

// PageMeta is what the scraper reads from a fetched page.
type PageMeta struct {
	Title      string
	RobotsMeta string
	HasNoindex bool
}

// ProbeResult godoc
// @Description Outcome of one bot probe against the target url
// @Type ProbeResult
type ProbeResult struct {
	Bot           Bot           `json:"bot"`
	StatusCode    int           `json:"status_code,omitempty"`
	Title         string        `json:"title,omitempty"`
	RobotsMeta    string        `json:"robots_meta,omitempty"`
	HasNoindex    bool          `json:"has_noindex"`
	RobotsAllowed bool          `json:"robots_allowed"`
	LoadTime      time.Duration `json:"-"`
	CrawlDelay    time.Duration `json:"-"` // from robots.txt
	Error         string        `json:"error,omitempty"`
}

// IsAllowed is the combined verdict: the page answered 200, robots.txt lets the bot in and the page
// carries no noindex directive.
func (r *ProbeResult) IsAllowed() bool {
	return r.StatusCode == http.StatusOK && r.RobotsAllowed && !r.HasNoindex
}

func (r *ProbeResult) Failed() bool {
	return r.Error != ""
}

// CheckResponse godoc
// @Description Results of all registered bots for the url
// @Type CheckResponse
type CheckResponse struct {
	Url     string             `json:"url"`
	Host    string             `json:"host"`
	Results []*ProbeResultView `json:"results"`
}

type TargetResponse struct {
	StatusCode int
	Body       []byte
}

// ProbeResultView adds the computed verdict for JSON consumers. Durations are in seconds, as in the text report.
type ProbeResultView struct {
	*ProbeResult
	Allowed    bool    `json:"is_allowed"`
	LoadTime   float64 `json:"load_time,omitempty"`
	CrawlDelay float64 `json:"crawl_delay,omitempty"`
}

func NewProbeResultView(r *ProbeResult) *ProbeResultView {
	return &ProbeResultView{
		ProbeResult: r,
		Allowed:     r.IsAllowed(),
		LoadTime:    seconds(r.LoadTime),
		CrawlDelay:  seconds(r.CrawlDelay),
	}
}

// seconds with millisecond precision
func seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
