// Package cli implements mascotctl, a terminal front end for the mascot's
// commands. It calls the same use cases as the bridge and is meant for
// checking feeds, the weather source and the speech engine without the GUI.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mascot-backend/internal/config"
	"mascot-backend/internal/handler/http/command"
	"mascot-backend/internal/infra/desktop"
	"mascot-backend/internal/infra/fetcher"
	"mascot-backend/internal/infra/voicevox"
	"mascot-backend/internal/observability/logging"
	desktopUC "mascot-backend/internal/usecase/desktop"
	"mascot-backend/internal/usecase/fetch"
	"mascot-backend/internal/usecase/speech"
	"mascot-backend/internal/usecase/weather"
)

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// Services are the use cases the commands call.
type Services struct {
	Articles command.ArticleFetcher
	Speech   command.Synthesizer
	Weather  command.WeatherSource
	Browser  URLOpener
}

// ServicesFactory builds Services from the loaded configuration.
type ServicesFactory func(cfg *config.Config) (*Services, error)

type app struct {
	configFile string
	colorMode  string
	jsonOutput bool
	verbose    bool
	timeout    time.Duration

	build    ServicesFactory
	services *Services
	printer  *Printer
	logger   *slog.Logger
}

// Execute runs mascotctl with the process arguments.
func Execute(version string) error {
	return NewRootCommand(version, BuildServices).Execute()
}

// NewRootCommand returns the mascotctl command tree.
func NewRootCommand(version string, build ServicesFactory) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:   "mascotctl",
		Short: "Desktop mascot backend CLI",
		Long: `mascotctl runs the desktop mascot's commands from a terminal.

Example usage:
  mascotctl rss https://example.com/feed.xml   # Show the latest feed entries
  mascotctl qiita alice                        # Show alice's Qiita articles
  mascotctl zenn alice --json                  # Zenn articles as JSON
  mascotctl weather                            # Current weather in Tokyo
  mascotctl speak "こんにちは" -o hello.wav      # Synthesize speech with VOICEVOX`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "auto", "color output: auto, always, never")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "command timeout")

	root.AddCommand(
		newArticlesCmd(a, "rss <feed-url>", "Fetch and normalize an RSS/Atom feed", command.FetchRSS),
		newArticlesCmd(a, "qiita <username>", "Fetch a user's Qiita articles", command.FetchQiita),
		newArticlesCmd(a, "zenn <username>", "Fetch a user's Zenn articles", command.FetchZenn),
		newWeatherCmd(a),
		newSpeakCmd(a),
		newOpenCmd(a),
		newVersionCmd(version),
	)
	return root
}

// init resolves output settings and, for commands that need them, services.
func (a *app) init(cmd *cobra.Command) error {
	mode, err := ParseColorMode(a.colorMode)
	if err != nil {
		return err
	}
	a.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(mode))

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if cmd.Annotations[annotationNoServices] == "true" || a.services != nil {
		return nil
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.services, err = a.build(cfg)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	a.logger.Debug("configuration loaded",
		slog.String("voicevox_url", cfg.Upstreams.VoicevoxURL),
		slog.String("weather_base_url", cfg.Upstreams.WeatherBaseURL))
	return nil
}

const annotationNoServices = "no-services"

// commandContext returns a context bounded by the --timeout flag.
func (a *app) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := logging.WithLogger(cmd.Context(), a.logger)
	return context.WithTimeout(ctx, a.timeout)
}

// fail renders err the way the GUI shows it and returns it for the exit code.
func (a *app) fail(failure string, err error) error {
	msg := command.DisplayMessage(failure, err)
	if errors.Is(err, context.DeadlineExceeded) {
		msg = fmt.Sprintf("%s: timed out after %s", failure, a.timeout)
	}
	return errors.New(msg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// BuildServices wires the use cases the same way the bridge does.
func BuildServices(cfg *config.Config) (*Services, error) {
	clientCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	httpClient := fetcher.NewHTTPClient(clientCfg)

	fetchSvc := fetch.NewService(httpClient)
	fetchSvc.QiitaBaseURL = cfg.Upstreams.QiitaBaseURL
	fetchSvc.ZennBaseURL = cfg.Upstreams.ZennBaseURL

	weatherSvc := weather.NewService(httpClient)
	weatherSvc.BaseURL = cfg.Upstreams.WeatherBaseURL

	return &Services{
		Articles: fetchSvc,
		Speech:   speech.NewService(voicevox.NewClient(cfg.Upstreams.VoicevoxURL, httpClient)),
		Weather:  weatherSvc,
		Browser:  &desktopUC.Service{Opener: desktop.NewBrowserOpener()},
	}, nil
}
