// Package main provides the CLI entry point for patterncard.
package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/patterncard/pkg/adapters/codecselect"
	"github.com/user/patterncard/pkg/adapters/filesink"
	"github.com/user/patterncard/pkg/adapters/ggrenderer"
	"github.com/user/patterncard/pkg/adapters/logger"
	"github.com/user/patterncard/pkg/adapters/nullsink"
	"github.com/user/patterncard/pkg/adapters/osfilesystem"
	"github.com/user/patterncard/pkg/config"
	"github.com/user/patterncard/pkg/orchestrator"
	"github.com/user/patterncard/pkg/pattern"
	"github.com/user/patterncard/pkg/patterncard"
	"github.com/user/patterncard/pkg/playback"
	"github.com/user/patterncard/pkg/pngmeta"
	"github.com/user/patterncard/pkg/ports"
	"github.com/user/patterncard/pkg/stages/assemble"
	"github.com/user/patterncard/pkg/stages/scenes"
	"github.com/user/patterncard/pkg/token"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "patterncard",
		Usage:   l10n.T("Create, share and export generative pattern cards"),
		Version: version,
		Commands: []*cli.Command{
			exportCommand(),
			renderCommand(),
			extractCommand(),
			shareCommand(),
			playCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadCollection reads a card collection from either a document file or a
// share token. Exactly one of the two sources must be provided.
func loadCollection(inputPath, tok string) (*pattern.Collection, error) {
	switch {
	case inputPath != "" && tok != "":
		return nil, fmt.Errorf("specify either an input file or --token, not both")
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return pattern.UnmarshalDocument(data)
	case tok != "":
		return collectionFromToken(tok)
	default:
		return nil, fmt.Errorf("an input file or --token is required")
	}
}

// collectionFromToken rebuilds a collection from a decoded share token.
func collectionFromToken(tok string) (*pattern.Collection, error) {
	dec, err := token.Decode(strings.TrimSpace(tok))
	if err != nil {
		return nil, err
	}

	items := make([]pattern.Item, 0, len(dec.Items))
	for _, it := range dec.Items {
		items = append(items, pattern.Item{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Data:        it.Data,
			Config:      it.Config,
		})
	}

	return &pattern.Collection{Items: items, TimingMs: dec.TimingMs}, nil
}

func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Export a card collection as MP4 video"),
		ArgsUsage: "[document.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output MP4 file path (required unless set in the config file)")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML config file providing flag defaults")},
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: l10n.T("Load the collection from a share token instead of a file")},
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: 0, Usage: l10n.T("Square frame size in pixels (default: 1000)")},
			&cli.IntFlag{Name: "loops", Aliases: []string{"n"}, Value: 1, Usage: l10n.T("Times the card set repeats (min: 1)")},
			&cli.IntFlag{Name: "timing", Usage: l10n.T("Per-scene duration in milliseconds (overrides the document)")},
			&cli.StringFlag{Name: "intro", Usage: l10n.T("Intro title card text")},
			&cli.StringFlag{Name: "outro", Usage: l10n.T("Outro title card text")},
			&cli.StringFlag{Name: "theme", Value: "dark", Usage: l10n.T("Rendering theme (dark, light)")},
			&cli.StringFlag{Name: "codec", Usage: l10n.T("Preferred video codec (avc, hevc, vp9, av1)")},
			&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Quality preset (low, medium, high)")},
			&cli.IntFlag{Name: "crf", Value: -1, Usage: l10n.T("Video CRF value (0-63, lower is better, overrides quality preset)")},
			&cli.IntFlag{Name: "bitrate", Usage: l10n.T("Target bitrate in kbps (overrides quality preset)")},
			&cli.BoolFlag{Name: "compact", Usage: l10n.T("Use the compact 512px preset")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to ffmpeg binary (falls back to FFMPEG_PATH env, then PATH)")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	log := newLogger(c.Bool("quiet"), c.String("log-level"))

	fileCfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		fileCfg, err = config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	inputPath := c.Args().First()
	if inputPath == "" {
		inputPath = fileCfg.InputPath
	}
	collection, err := loadCollection(inputPath, c.String("token"))
	if err != nil {
		return err
	}
	switch {
	case c.Int("timing") > 0:
		collection.TimingMs = c.Int("timing")
	case fileCfg.TimingMs > 0:
		collection.TimingMs = fileCfg.TimingMs
	}

	output := c.String("output")
	if output == "" {
		output = fileCfg.OutputPath
	}
	if output == "" {
		return fmt.Errorf("an output path is required (--output or the config file)")
	}

	cfg := buildExportConfig(c, fileCfg, collection.TimingMs)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	encoder, info, err := codecselect.New(cfg.Codec, codecselect.Options{
		FFmpegPath: cfg.FFmpegPath,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	log.Debug("Selected codec: %s", info.Codec)

	// Create debug sink
	var sink ports.DebugSink
	if c.Bool("debug") || fileCfg.Debug {
		debugDir := c.String("debug-dir")
		if !c.IsSet("debug-dir") && fileCfg.DebugDir != "" {
			debugDir = fileCfg.DebugDir
		}
		if err := fs.MkdirAll(debugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(debugDir, fs)
	} else {
		sink = nullsink.New()
	}

	// Create stages and orchestrator
	orch := orchestrator.New(
		scenes.NewStage(log),
		assemble.NewStage(renderer, encoder, sink, log),
		fs,
		sink,
		log,
	)

	result, err := orch.Run(ctx, collection, cfg.ToOrchestratorConfig(output))
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", result.OutputPath))
	return nil
}

// buildExportConfig creates a patterncard.Config from the file config and
// CLI flags. Flags win over file values; --compact replaces the file-seeded
// base with the compact preset.
func buildExportConfig(c *cli.Context, fileCfg config.Config, timingMs int) patterncard.Config {
	var builder *patterncard.ConfigBuilder
	if c.Bool("compact") {
		builder = patterncard.NewCompactConfigBuilder()
	} else {
		builder = fileCfg.ToBuilder()
	}

	builder.WithTimingMs(timingMs)
	if c.IsSet("loops") {
		builder.WithLoopCount(c.Int("loops"))
	}
	if c.IsSet("theme") {
		builder.WithTheme(ports.ParseTheme(c.String("theme")))
	}
	if c.Int("size") > 0 {
		builder.WithPixelSize(c.Int("size"))
	}
	if c.String("intro") != "" {
		builder.WithIntroTitle(c.String("intro"))
	}
	if c.String("outro") != "" {
		builder.WithOutroTitle(c.String("outro"))
	}
	if c.String("quality") != "" {
		builder.WithQualityPreset(patterncard.QualityPreset(c.String("quality")))
	}
	if c.Int("crf") >= 0 {
		builder.WithQuality(c.Int("crf"))
	}
	if c.Int("bitrate") > 0 {
		builder.WithBitrate(c.Int("bitrate"))
	}
	if c.String("codec") != "" {
		builder.WithCodec(ports.VideoCodec(c.String("codec")))
	}
	if c.String("ffmpeg") != "" {
		builder.WithFFmpegPath(c.String("ffmpeg"))
	}

	return builder.Build()
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render one card as a PNG image"),
		ArgsUsage: "[document.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output PNG file path (required)")},
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: l10n.T("Load the collection from a share token instead of a file")},
			&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Value: 0, Usage: l10n.T("Card index to render")},
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: 1000, Usage: l10n.T("Square frame size in pixels")},
			&cli.Float64Flag{Name: "rotation", Usage: l10n.T("Pattern rotation in degrees")},
			&cli.StringFlag{Name: "theme", Value: "dark", Usage: l10n.T("Rendering theme (dark, light)")},
			&cli.BoolFlag{Name: "stamp", Value: true, Usage: l10n.T("Embed the share token into the PNG metadata")},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	collection, err := loadCollection(c.Args().First(), c.String("token"))
	if err != nil {
		return err
	}

	index := c.Int("index")
	if index < 0 || index >= collection.Len() {
		return fmt.Errorf("card index %d out of range (collection has %d cards)", index, collection.Len())
	}
	item := collection.Items[index]

	renderer := ggrenderer.New()
	img, err := renderer.Render(item.Data, item.Config, c.Float64("rotation"), c.Int("size"), ports.ParseTheme(c.String("theme")))
	if err != nil {
		return fmt.Errorf("render card: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	data := buf.Bytes()

	if c.Bool("stamp") {
		tok, err := token.Encode(item.Config, collection.Items, collection.TimingMs)
		if err != nil {
			return fmt.Errorf("encode token: %w", err)
		}
		data = pngmeta.Write(data, pngmeta.TokenKey, tok)
	}

	return os.WriteFile(c.String("output"), data, 0o644)
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     l10n.T("Extract the share token embedded in a PNG image"),
		ArgsUsage: "card.png",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: l10n.T("Print the decoded document as JSON instead of the raw token")},
		},
		Action: runExtract,
	}
}

func runExtract(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("a PNG file argument is required")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("read png: %w", err)
	}

	tok, ok := pngmeta.Read(data, pngmeta.TokenKey)
	if !ok {
		return fmt.Errorf("no embedded token found in %s", c.Args().First())
	}

	if c.Bool("json") {
		collection, err := collectionFromToken(tok)
		if err != nil {
			return err
		}
		doc, err := pattern.MarshalDocument(collection)
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
		return nil
	}

	fmt.Println(tok)
	return nil
}

func shareCommand() *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: l10n.T("Encode and decode share tokens"),
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     l10n.T("Encode a document file into a share token"),
				ArgsUsage: "document.json",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("a document file argument is required")
					}
					collection, err := loadCollection(c.Args().First(), "")
					if err != nil {
						return err
					}
					active := collection.Active()
					if active == nil {
						return fmt.Errorf("document has no cards")
					}
					tok, err := token.Encode(active.Config, collection.Items, collection.TimingMs)
					if err != nil {
						return err
					}
					fmt.Println(tok)
					return nil
				},
			},
			{
				Name:      "decode",
				Usage:     l10n.T("Decode a share token into a document file"),
				ArgsUsage: "TOKEN",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("a token argument is required")
					}
					collection, err := collectionFromToken(c.Args().First())
					if err != nil {
						return err
					}
					doc, err := pattern.MarshalDocument(collection)
					if err != nil {
						return err
					}
					fmt.Println(string(doc))
					return nil
				},
			},
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Cycle through a collection in the terminal"),
		ArgsUsage: "[document.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: l10n.T("Load the collection from a share token instead of a file")},
			&cli.IntFlag{Name: "timing", Usage: l10n.T("Per-scene duration in milliseconds (overrides the document)")},
			&cli.IntFlag{Name: "ticks", Value: 0, Usage: l10n.T("Stop after this many card changes (0 = run until interrupted)")},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	collection, err := loadCollection(c.Args().First(), c.String("token"))
	if err != nil {
		return err
	}
	if c.Int("timing") > 0 {
		collection.TimingMs = c.Int("timing")
	}

	clock := playback.New(collection)

	ticks := make(chan int, 16)
	clock.OnChange(func(index int) {
		ticks <- index
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	printCard(collection, collection.ActiveIndex)
	clock.Play()
	defer clock.Pause()

	remaining := c.Int("ticks")
	for {
		select {
		case index := <-ticks:
			printCard(collection, index)
			if remaining > 0 {
				remaining--
				if remaining == 0 {
					return nil
				}
			}
		case <-sigCh:
			return nil
		}
	}
}

func printCard(c *pattern.Collection, index int) {
	if index < 0 || index >= c.Len() {
		return
	}
	item := c.Items[index]
	ts := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] %s %s\n", ts, strconv.Itoa(index+1)+"/"+strconv.Itoa(c.Len()), item.Name)
}
