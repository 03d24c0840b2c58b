package checker

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/IliaW/bots-checker/internal/model"
	"github.com/IliaW/bots-checker/internal/prober"
	"github.com/IliaW/bots-checker/internal/robots"
	"github.com/IliaW/bots-checker/internal/scraper"
	"github.com/IliaW/bots-checker/internal/telemetry"
)

type PolicyFetcher interface {
	FetchPolicy(ctx context.Context, url string) *robots.Policy
}

type PageProber interface {
	Probe(url, userAgent string) (*prober.Response, error)
}

// ReportFunc receives every result as soon as the bot is checked.
type ReportFunc func(result *model.ProbeResult)

type Checker struct {
	fetcher PolicyFetcher
	prober  PageProber
	bots    []model.Bot
	metrics *telemetry.CheckerMetrics
}

func NewChecker(fetcher PolicyFetcher, prober PageProber, bots []model.Bot,
	metrics *telemetry.CheckerMetrics) *Checker {
	return &Checker{
		fetcher: fetcher,
		prober:  prober,
		bots:    bots,
		metrics: metrics,
	}
}

// Run fetches robots.txt once and then probes the url with every bot, one after another.
// A failed probe is reported and the loop goes on.
func (c *Checker) Run(ctx context.Context, url string, report ReportFunc) {
	policy := c.fetcher.FetchPolicy(ctx, url)
	if policy == nil {
		c.metrics.RobotsMissingCounter(1)
	}

	for _, bot := range c.bots {
		report(c.check(policy, bot, url))
	}
}

func (c *Checker) check(policy *robots.Policy, bot model.Bot, url string) *model.ProbeResult {
	result := &model.ProbeResult{
		Bot:           bot,
		RobotsAllowed: robots.Allowed(policy, bot.UserAgent, url),
		CrawlDelay:    policy.CrawlDelay(bot.UserAgent),
	}

	resp, err := c.prober.Probe(url, bot.UserAgent)
	if err != nil {
		slog.Debug("probe failed.", slog.String("bot", bot.Name), slog.String("err", err.Error()))
		result.Error = err.Error()
		c.metrics.ProbeErrorCounter(1)
		return result
	}

	meta := scraper.ScrapeReader(bytes.NewReader(resp.Body))
	result.StatusCode = resp.StatusCode
	result.LoadTime = resp.Elapsed
	result.Title = meta.Title
	result.RobotsMeta = meta.RobotsMeta
	result.HasNoindex = meta.HasNoindex

	if result.IsAllowed() {
		c.metrics.AllowedCounter(1)
	} else {
		c.metrics.BlockedCounter(1)
	}
	slog.Debug("bot checked.", slog.String("bot", bot.Name), slog.Int("status_code", result.StatusCode),
		slog.Bool("robots_allowed", result.RobotsAllowed), slog.Bool("has_noindex", result.HasNoindex))

	return result
}
