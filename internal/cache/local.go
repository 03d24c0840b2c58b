package cache

import (
	"log/slog"

	"github.com/IliaW/bots-checker/config"
	"github.com/patrickmn/go-cache"
)

// LocalCacheClient keeps robots.txt bodies in process memory. Used when no memcached servers are configured.
type LocalCacheClient struct {
	cache *cache.Cache
}

func NewLocalCacheClient(cacheConfig *config.CacheConfig) *LocalCacheClient {
	return &LocalCacheClient{
		cache: cache.New(cacheConfig.TtlForRobotsTxt, 2*cacheConfig.TtlForRobotsTxt),
	}
}

func (lc *LocalCacheClient) GetRobotsFile(url string) ([]byte, bool) {
	key := robotsKey(url)
	v, ok := lc.cache.Get(key)
	if !ok {
		slog.Debug("cache not found.", slog.String("key", key), slog.String("url", url))
		return nil, false
	}
	slog.Debug("cache found.", slog.String("key", key))

	return v.([]byte), true
}

func (lc *LocalCacheClient) SaveRobotsFile(url string, robotFile []byte) {
	lc.cache.Set(robotsKey(url), robotFile, cache.DefaultExpiration)
	slog.Debug("robots file saved to cache.")
}

func (lc *LocalCacheClient) Close() {
	lc.cache.Flush()
}
