// Command bridge serves the mascot's native commands on a loopback address.
//
// The GUI front end invokes POST /invoke/{command} instead of calling into
// the desktop shell directly. See internal/handler/http/command for the
// command table.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mascot-backend/internal/config"
	hhttp "mascot-backend/internal/handler/http"
	"mascot-backend/internal/handler/http/command"
	"mascot-backend/internal/handler/http/middleware"
	"mascot-backend/internal/handler/http/pathutil"
	"mascot-backend/internal/handler/http/requestid"
	"mascot-backend/internal/infra/desktop"
	"mascot-backend/internal/infra/fetcher"
	"mascot-backend/internal/infra/voicevox"
	"mascot-backend/internal/observability/logging"
	"mascot-backend/internal/observability/tracing"
	desktopUC "mascot-backend/internal/usecase/desktop"
	"mascot-backend/internal/usecase/fetch"
	"mascot-backend/internal/usecase/speech"
	"mascot-backend/internal/usecase/weather"
)

func main() {
	configPath := flag.String("config", os.Getenv("MASCOT_CONFIG_FILE"), "optional YAML config file")
	envFile := flag.String("env-file", ".env", "optional .env file")
	flag.Parse()

	logger := initLogger()

	if err := config.LoadDotEnv(*envFile); err != nil {
		logger.Error("failed to load env file", slog.Any("error", err))
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	clientCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load HTTP client configuration", slog.Any("error", err))
		os.Exit(1)
	}

	components := setupServer(logger, cfg, clientCfg)
	runServer(logger, cfg, components)
}

// initLogger initializes the JSON logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds what the server needs to run.
type ServerComponents struct {
	Handler http.Handler
	Window  *desktop.TrackedWindow
}

// setupServer wires the use cases to their adapters and builds the handler.
func setupServer(logger *slog.Logger, cfg *config.Config, clientCfg fetcher.ClientConfig) *ServerComponents {
	httpClient := fetcher.NewHTTPClient(clientCfg)

	fetchSvc := fetch.NewService(httpClient)
	fetchSvc.QiitaBaseURL = cfg.Upstreams.QiitaBaseURL
	fetchSvc.ZennBaseURL = cfg.Upstreams.ZennBaseURL

	engine := voicevox.NewClient(cfg.Upstreams.VoicevoxURL, httpClient)

	weatherSvc := weather.NewService(httpClient)
	weatherSvc.BaseURL = cfg.Upstreams.WeatherBaseURL

	window := desktop.NewTrackedWindow()
	desktopSvc := &desktopUC.Service{
		Opener: desktop.NewBrowserOpener(),
		Picker: desktop.NewDialogPicker(),
		Window: window,
	}

	commands := &command.Handler{
		Articles: fetchSvc,
		Speech:   speech.NewService(engine),
		Weather:  weatherSvc,
		Desktop:  desktopSvc,
	}

	logger.Info("bridge components initialized",
		slog.String("voicevox_url", cfg.Upstreams.VoicevoxURL),
		slog.String("weather_base_url", cfg.Upstreams.WeatherBaseURL),
		slog.Duration("http_client_timeout", clientCfg.Timeout))

	mux := setupRoutes(cfg, commands, engine, window)
	return &ServerComponents{
		Handler: applyMiddleware(logger, cfg, mux),
		Window:  window,
	}
}

// setupRoutes registers probes, metrics and every command.
func setupRoutes(cfg *config.Config, commands *command.Handler, engine hhttp.EngineProber, window hhttp.WindowProber) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:      cfg.Version,
		SpeechEngine: engine,
		Window:       window,
	})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	commands.Register(mux, hhttp.Timeout(cfg.RequestTimeout))
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Recover → Request ID → Tracing → Logging → Metrics → CORS → Body Limit
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	corsConfig := middleware.NewCORSConfig(cfg.AllowedOrigins)
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	paths := pathutil.NewNormalizer([]string{"/health", "/live", "/metrics"}, command.Names())

	return hhttp.Chain(handler,
		hhttp.Recover(logger),
		requestid.Middleware,
		tracing.Middleware(paths),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware(paths),
		middleware.CORS(corsConfig),
		hhttp.LimitRequestBody(cfg.MaxRequestBody),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("bridge starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("bridge failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down bridge...")

	// 実行中のコマンド (ファイル選択ダイアログを含む) を中断する
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("bridge shutdown failed", slog.Any("error", err))
	}
	logger.Info("bridge stopped")
}
