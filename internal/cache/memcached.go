package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/IliaW/bots-checker/config"
	"github.com/IliaW/bots-checker/util"
	"github.com/bradfitz/gomemcache/memcache"
)

// CachedClient stores robots.txt bodies keyed by the robots base url of the page.
//
//go:generate go run github.com/vektra/mockery/v2@v2.53.0 --name CachedClient
type CachedClient interface {
	GetRobotsFile(string) ([]byte, bool)
	SaveRobotsFile(string, []byte)
	Close()
}

type MemcachedClient struct {
	client *memcache.Client
	cfg    *config.CacheConfig
}

func NewMemcachedClient(cacheConfig *config.CacheConfig) *MemcachedClient {
	slog.Info("connecting to memcached...")
	ss := new(memcache.ServerList)
	err := ss.SetServers(cacheConfig.Servers...)
	if err != nil {
		slog.Error("failed to set memcached servers.", slog.String("err", err.Error()))
		os.Exit(1)
	}
	c := &MemcachedClient{
		client: memcache.NewFromSelector(ss),
		cfg:    cacheConfig,
	}
	slog.Info("pinging the memcached.")
	err = c.client.Ping()
	if err != nil {
		slog.Error("connection to the memcached is failed.", slog.String("err", err.Error()))
		os.Exit(1)
	}
	slog.Info("connected to memcached!")

	return c
}

func (mc *MemcachedClient) GetRobotsFile(url string) ([]byte, bool) {
	key := robotsKey(url)
	item, err := mc.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			slog.Debug("cache not found.", slog.String("key", key), slog.String("url", url))
		} else {
			slog.Error("failed to check if cached.", slog.String("key", key), slog.String("url", url),
				slog.String("err", err.Error()))
		}
		return nil, false
	}
	slog.Debug("cache found.", slog.String("key", key))

	return item.Value, true
}

func (mc *MemcachedClient) SaveRobotsFile(url string, robotFile []byte) {
	key := robotsKey(url)
	item := &memcache.Item{
		Key:        key,
		Value:      robotFile,
		Expiration: int32(mc.cfg.TtlForRobotsTxt.Seconds()),
	}
	if err := mc.client.Set(item); err != nil {
		slog.Error("failed to save robots file to cache.", slog.String("key", key),
			slog.String("err", err.Error()))
		return
	}
	slog.Debug("robots file saved to cache.")
}

func (mc *MemcachedClient) Close() {
	slog.Info("closing memcached connection.")
	err := mc.client.Close()
	if err != nil {
		slog.Error("failed to close memcached connection.", slog.String("err", err.Error()))
	}
}

// robotsKey is shared by every page of one scheme://host:port, as is the robots.txt file itself.
func robotsKey(url string) string {
	base, err := util.GetBaseUrl(url)
	if err != nil {
		slog.Error("failed to parse url. Use full url as a key.", slog.String("url", url),
			slog.String("err", err.Error()))
		base = url
	}

	return fmt.Sprintf("%s-robots-txt", util.HashURL(base))
}
