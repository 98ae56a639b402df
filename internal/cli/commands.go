package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/handler/http/command"
	"mascot-backend/internal/usecase/weather"
	"mascot-backend/internal/utils/text"
)

// failures mirror the messages the GUI shows for each command.
var failures = map[string]string{
	command.FetchRSS:         "Failed to fetch RSS",
	command.FetchQiita:       "Failed to fetch Qiita articles",
	command.FetchZenn:        "Failed to fetch Zenn articles",
	command.FetchWeather:     "Failed to fetch weather",
	command.SynthesizeSpeech: "Failed to synthesize speech",
	command.OpenURL:          "Failed to open URL",
}

func newArticlesCmd(a *app, use, short, name string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			var (
				articles []entity.Article
				err      error
			)
			switch name {
			case command.FetchRSS:
				articles, err = a.services.Articles.FetchRSS(ctx, args[0])
			case command.FetchQiita:
				articles, err = a.services.Articles.FetchQiita(ctx, args[0])
			case command.FetchZenn:
				articles, err = a.services.Articles.FetchZenn(ctx, args[0])
			}
			if err != nil {
				return a.fail(failures[name], err)
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), articles)
			}
			printArticles(a.printer, args[0], articles)
			return nil
		},
	}
}

func printArticles(p *Printer, source string, articles []entity.Article) {
	p.Header(fmt.Sprintf("%s (%d)", source, len(articles)))
	if len(articles) == 0 {
		p.Print("%s", p.Dim("no articles"))
		return
	}

	rows := make([][]string, 0, len(articles))
	for i, art := range articles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Bold(text.Truncate(art.Title, 60, "…")),
			art.Link,
		})
	}
	p.Table([]string{"#", "TITLE", "LINK"}, rows)
}

func newWeatherCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Show the current weather in Tokyo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			raw, err := a.services.Weather.Current(ctx)
			if err != nil {
				return a.fail(failures[command.FetchWeather], err)
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), raw)
			}

			summary, err := weather.Summarize(raw)
			if err != nil {
				return a.fail(failures[command.FetchWeather], err)
			}
			a.printer.Print("%s", summary)
			return nil
		},
	}
}

func newSpeakCmd(a *app) *cobra.Command {
	var (
		speaker uint32
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Synthesize speech and write it as a WAV file",
		Long: `Synthesize speech with the local VOICEVOX engine.

The engine must be running (default http://127.0.0.1:50021).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			text := strings.Join(args, " ")
			audio, err := a.services.Speech.Synthesize(ctx, text, speaker)
			if err != nil {
				return a.fail(failures[command.SynthesizeSpeech], err)
			}

			if outFile == "-" {
				_, err := cmd.OutOrStdout().Write(audio)
				return err
			}
			if err := os.WriteFile(outFile, audio, 0o644); err != nil { // #nosec G306 -- audio output is not sensitive
				return fmt.Errorf("writing %s: %w", outFile, err)
			}
			a.printer.Success("wrote %d bytes to %s (speaker %d)", len(audio), outFile, speaker)
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&speaker, "speaker", "s", 1, "VOICEVOX speaker ID")
	cmd.Flags().StringVarP(&outFile, "output", "o", "speech.wav", "output file, - for stdout")
	return cmd
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			if err := a.services.Browser.OpenURL(ctx, args[0]); err != nil {
				return a.fail(failures[command.OpenURL], err)
			}
			a.printer.Success("opened %s", args[0])
			return nil
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoServices: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			short, _ := cmd.Flags().GetBool("short")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version":   version,
					"goVersion": runtime.Version(),
					"platform":  runtime.GOOS + "/" + runtime.GOARCH,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "mascotctl version %s\n", version)
			fmt.Fprintf(w, "  go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().Bool("short", false, "print version string only")
	return cmd
}
