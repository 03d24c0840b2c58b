package robots

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jimsmart/grobotstxt"
	"github.com/temoto/robotstxt"
)

// Policy is a parsed robots.txt. A nil *Policy means the host has no usable robots.txt, which allows everything.
type Policy struct {
	body  string
	data  *robotstxt.RobotsData
	match func(robotsBody, userAgent, uri string) bool
}

// Parse never fails, the matcher is lenient about syntax slips. Crawl-delay comes from a stricter parser
// and is simply unknown when that parser rejects the file.
func Parse(body []byte) *Policy {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		slog.Debug("robots.txt has syntax errors. Crawl-delay is unknown.", slog.String("err", err.Error()))
		data = nil
	}

	return &Policy{
		body:  string(body),
		data:  data,
		match: grobotstxt.AgentAllowed,
	}
}

// CrawlDelay of the group that applies to the user agent, zero when there is none.
func (p *Policy) CrawlDelay(userAgent string) time.Duration {
	if p == nil || p.data == nil {
		return 0
	}
	group := p.data.FindGroup(AgentToken(userAgent))
	if group == nil {
		return 0
	}

	return group.CrawlDelay
}

// Allowed reports whether robots.txt lets the user agent fetch the url. A missing policy allows everything,
// while a policy that fails to evaluate blocks everything.
func Allowed(policy *Policy, userAgent, url string) (allowed bool) {
	if policy == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("robots.txt evaluation failed. Treat as blocked.", slog.String("user_agent", userAgent),
				slog.String("url", url), slog.Any("err", r))
			allowed = false
		}
	}()

	return policy.match(policy.body, AgentToken(userAgent), url)
}

// Product tokens that browser-like crawler signatures carry before the crawler's own token.
var browserTokens = map[string]bool{
	"mozilla":     true,
	"applewebkit": true,
	"chrome":      true,
	"safari":      true,
	"gecko":       true,
	"khtml":       true,
}

// AgentToken extracts the product token robots.txt groups are written against, e.g. "GPTBot" from
// "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko); compatible; GPTBot/1.1; +https://openai.com/gptbot".
func AgentToken(userAgent string) string {
	fields := strings.FieldsFunc(userAgent, func(r rune) bool {
		return r == ' ' || r == ';' || r == '(' || r == ')' || r == ','
	})
	for _, field := range fields {
		name, _, found := strings.Cut(field, "/")
		if !found || !isProductName(name) || browserTokens[strings.ToLower(name)] {
			continue
		}
		return name
	}

	return strings.TrimSpace(userAgent)
}

func isProductName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.') {
			return false
		}
	}
	return true
}
