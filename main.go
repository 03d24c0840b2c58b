package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/IliaW/bots-checker/config"
	"github.com/IliaW/bots-checker/handler"
	cacheClient "github.com/IliaW/bots-checker/internal/cache"
	"github.com/IliaW/bots-checker/internal/checker"
	"github.com/IliaW/bots-checker/internal/prober"
	"github.com/IliaW/bots-checker/internal/registry"
	"github.com/IliaW/bots-checker/internal/robots"
	"github.com/IliaW/bots-checker/internal/telemetry"
	"github.com/IliaW/bots-checker/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
)

var (
	cfg     *config.Config
	metrics *telemetry.MetricsProvider
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code. Only bad input exits non-zero, failed probes are part of the report.
func run(args []string, stdout io.Writer) int {
	name := filepath.Base(os.Args[0])
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.BoolP("help", "h", false, "show this help message")
	format := fs.String("format", "text", "output format: text or json")
	serve := fs.Bool("serve", false, "start the HTTP API instead of checking a single url")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stdout, "Error: %s\n\n", err.Error())
		printUsage(stdout, name, fs)
		return 1
	}
	if *help {
		printUsage(stdout, name, fs)
		return 0
	}
	if *serve {
		return serveApi()
	}

	url := fs.Arg(0)
	if url == "" {
		printUsage(stdout, name, fs)
		return 0
	}
	if !util.IsValidUrl(url) {
		fmt.Fprintf(stdout, "Error: Invalid URL '%s'\n", url)
		fmt.Fprintln(stdout, "Please provide a valid URL starting with http:// or https://")
		fmt.Fprintf(stdout, "Example: %s https://example.com\n", name)
		return 1
	}
	report, err := reporter(*format, stdout)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err.Error())
		return 1
	}

	cfg = config.MustLoad()
	setupLogger()
	metrics = telemetry.SetupMetrics(context.Background(), cfg)
	defer metrics.Close()

	newChecker(nil).Run(context.Background(), url, report)

	return 0
}

func printUsage(w io.Writer, name string, fs *pflag.FlagSet) {
	title := "AI Bots Testing Tool"
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Test website accessibility for different AI bot user agents including:")
	for _, company := range registry.Companies() {
		var names []string
		for _, b := range registry.BotsOf(company) {
			names = append(names, b.Name)
		}
		fmt.Fprintf(w, "- %s (%s)\n", company, strings.Join(names, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s [options] <URL>\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s https://example.com\n", name)
	fmt.Fprintf(w, "  %s https://yourwebsite.com\n", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The tool checks robots.txt compliance, meta robots tags,")
	fmt.Fprintln(w, "and actual HTTP responses to determine real AI bot access.")
}

func reporter(format string, w io.Writer) (checker.ReportFunc, error) {
	switch strings.ToLower(format) {
	case "text":
		return checker.TextReporter(w), nil
	case "json":
		return checker.JsonReporter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s'. Use text or json", format)
	}
}

func newChecker(cache cacheClient.CachedClient) *checker.Checker {
	transport := setupHttpTransport()
	robotsClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.HttpClientSettings.RobotsRequestTimeout,
	}

	return checker.NewChecker(
		robots.NewFetcher(robotsClient, cache),
		prober.NewProber(transport, cfg.HttpClientSettings.PageRequestTimeout, cfg.HttpClientSettings.MaxBodySize),
		registry.Bots(),
		metrics.CheckerMetrics)
}

func serveApi() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg = config.MustLoad()
	setupLogger()
	metrics = telemetry.SetupMetrics(context.Background(), cfg)
	defer metrics.Close()
	cache := setupCache()
	defer cache.Close()
	slog.Info("starting application on port "+cfg.Port, slog.String("env", cfg.Env))

	port := fmt.Sprintf(":%v", cfg.Port)
	srv := &http.Server{
		Addr:    port,
		Handler: httpServer(newChecker(cache)).Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen:", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("stopping server...")
	ctxT, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctxT)
	if errors.Is(err, context.DeadlineExceeded) {
		slog.Error("shutdown timeout exceeded")
		return 1
	}
	slog.Info("server stopped.")

	return 0
}

func httpServer(botsChecker *checker.Checker) *gin.Engine {
	setupGinMod()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(setCORS())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/ping"}}))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	botsCheckHandler := handler.NewBotsCheckHandler(botsChecker, metrics.ApiMetrics)
	api := r.Group(cfg.ApiUrlPath)
	api.GET("/bots-check", botsCheckHandler.GetBotsCheck)

	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound,
			gin.H{"message": fmt.Sprintf("no route found for %s %s", c.Request.Method, c.Request.URL)})
	})

	return r
}

func setCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { //allow all origins and echoes back the caller domain
			return true
		},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
		MaxAge:           cfg.CorsMaxAgeHours,
	})
}

func setupGinMod() {
	env := strings.ToLower(cfg.Env)
	if env == "dev" || env == "local" || env == "" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

// setupLogger writes to stderr, stdout belongs to the report.
func setupLogger() *slog.Logger {
	envLogLevel := strings.ToLower(cfg.LogLevel)
	var slogLevel slog.Level
	err := slogLevel.UnmarshalText([]byte(envLogLevel))
	if err != nil {
		log.Printf("encountenred log level: '%s'. The package does not support custom log levels", envLogLevel)
		slogLevel = slog.LevelWarn
	}
	slog.SetLogLoggerLevel(slogLevel)

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			source := a.Value.Any().(*slog.Source)
			source.File = filepath.Base(source.File)
		}
		return a
	}

	var logger *slog.Logger
	if strings.ToLower(cfg.LogType) == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource:   true,
			Level:       slogLevel,
			ReplaceAttr: replaceAttrs}))
	} else {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			AddSource:   true,
			Level:       slogLevel,
			ReplaceAttr: replaceAttrs,
			NoColor: func() bool {
				if cfg.Env == "local" {
					return false
				}
				return true
			}()}))
	}

	slog.SetDefault(logger)
	logger.Debug("debug messages are enabled.")

	return logger
}

func setupCache() cacheClient.CachedClient {
	if len(cfg.CacheSettings.Servers) > 0 {
		return cacheClient.NewMemcachedClient(cfg.CacheSettings)
	}
	slog.Info("no memcached servers configured. Using in-process robots.txt cache.")
	return cacheClient.NewLocalCacheClient(cfg.CacheSettings)
}

func setupHttpTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        cfg.HttpClientSettings.MaxIdleConnections,
		MaxIdleConnsPerHost: cfg.HttpClientSettings.MaxIdleConnectionsPerHost,
		MaxConnsPerHost:     cfg.HttpClientSettings.MaxConnectionsPerHost,
		IdleConnTimeout:     cfg.HttpClientSettings.IdleConnectionTimeout,
		TLSHandshakeTimeout: cfg.HttpClientSettings.TlsHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout:   cfg.HttpClientSettings.DialTimeout,
			KeepAlive: cfg.HttpClientSettings.DialKeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.HttpClientSettings.TlsInsecureSkipVerify,
		},
	}
}
