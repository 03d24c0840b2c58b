package scraper

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/IliaW/bots-checker/internal/model"
	"github.com/PuerkitoBio/goquery"
)

const (
	NoTitle      = "No title"
	NoRobotsMeta = "No robots meta"
	ParseError   = "Parse error"
)

// Scrape reads the title and the robots meta directive of a page.
func Scrape(html string) model.PageMeta {
	return ScrapeReader(strings.NewReader(html))
}

// ScrapeReader never fails. A document that cannot be parsed yields ParseError values and no noindex,
// so a broken page is never reported as blocked by noindex.
func ScrapeReader(r io.Reader) (meta model.PageMeta) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("html parser panicked.", slog.String("err", fmt.Sprint(rec)))
			meta = parseErrorMeta()
		}
	}()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		slog.Debug("failed to parse html.", slog.String("err", err.Error()))
		return parseErrorMeta()
	}

	meta.Title = NoTitle
	if title := doc.Find("title").First(); title.Length() > 0 {
		meta.Title = strings.TrimSpace(title.Text())
	}

	meta.RobotsMeta = NoRobotsMeta
	robots := doc.Find(`meta[name="robots"]`).First()
	content := strings.TrimSpace(robots.AttrOr("content", ""))
	if content != "" {
		meta.RobotsMeta = content
		meta.HasNoindex = strings.Contains(strings.ToLower(content), "noindex")
	}

	return meta
}

func parseErrorMeta() model.PageMeta {
	return model.PageMeta{
		Title:      ParseError,
		RobotsMeta: ParseError,
		HasNoindex: false,
	}
}
