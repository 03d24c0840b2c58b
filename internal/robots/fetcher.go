package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	cacheClient "github.com/IliaW/bots-checker/internal/cache"
	"github.com/IliaW/bots-checker/internal/model"
	"github.com/IliaW/bots-checker/util"
)

type Fetcher struct {
	httpClient *http.Client
	cache      cacheClient.CachedClient
}

// NewFetcher takes an optional cache. The command line run passes nil and always downloads robots.txt.
func NewFetcher(httpClient *http.Client, cache cacheClient.CachedClient) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		cache:      cache,
	}
}

// FetchPolicy downloads and parses robots.txt of the url's host. A failed download yields nil, i.e. no restrictions.
func (f *Fetcher) FetchPolicy(ctx context.Context, url string) *Policy {
	tResp, err := f.getRobotsTxt(ctx, url)
	if err != nil {
		slog.Debug("robots.txt is unavailable. No restrictions apply.", slog.String("url", url),
			slog.String("err", err.Error()))
		return nil
	}
	if tResp.StatusCode != http.StatusOK {
		slog.Debug("robots.txt is not found. No restrictions apply.", slog.String("url", url),
			slog.Int("status_code", tResp.StatusCode))
		return nil
	}

	return Parse(tResp.Body)
}

func (f *Fetcher) getRobotsTxt(ctx context.Context, url string) (*model.TargetResponse, error) {
	if f.cache != nil {
		if file, ok := f.cache.GetRobotsFile(url); ok {
			return &model.TargetResponse{
				StatusCode: http.StatusOK,
				Body:       file,
			}, nil
		}
	}

	tResp, err := f.requestToRobotsTxt(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.cache != nil && tResp.StatusCode == http.StatusOK && len(tResp.Body) != 0 {
		f.cache.SaveRobotsFile(url, tResp.Body)
	}

	return tResp, nil
}

func (f *Fetcher) requestToRobotsTxt(ctx context.Context, url string) (*model.TargetResponse, error) {
	robotsUrl, err := util.GetRobotsUrl(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url. %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsUrl, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = resp.Body.Close()
		if err != nil {
			slog.Error("error closing response body", slog.String("err", err.Error()))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body. %w", err)
	}

	return &model.TargetResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
