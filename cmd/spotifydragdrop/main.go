// Package main provides the spotifydragdrop CLI: drop track URLs in,
// get tagged mp3 files out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joelazwar/spotifyDragDrop/internal/core"
	"github.com/joelazwar/spotifyDragDrop/internal/pipeline"
	"github.com/joelazwar/spotifyDragDrop/internal/soundcloud"
	"github.com/joelazwar/spotifyDragDrop/internal/spotify"
	"github.com/joelazwar/spotifyDragDrop/internal/youtube"
	"github.com/joelazwar/spotifyDragDrop/pkg/platform"
	"github.com/joelazwar/spotifyDragDrop/pkg/text"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spotifydragdrop [track URLs...]",
	Short: "Resolve streaming track links into tagged local mp3 files",
	Long: `spotifydragdrop takes Spotify or SoundCloud track links, finds the matching
YouTube upload by duration, downloads the audio with yt-dlp and writes
ID3 tags including embedded album art.

URLs are given as arguments or read line by line from stdin.`,
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("spotify-client-id", "", "Spotify client ID")
	rootCmd.PersistentFlags().String("spotify-client-secret", "", "Spotify client secret")
	rootCmd.PersistentFlags().String("soundcloud-client-id", "", "SoundCloud client ID")
	rootCmd.PersistentFlags().String("soundcloud-client-secret", "", "SoundCloud client secret")
	rootCmd.PersistentFlags().String("youtube-api-key", "", "YouTube Data API key")
	rootCmd.PersistentFlags().StringP("output", "o", ".", "destination directory for mp3 files")
	rootCmd.PersistentFlags().String("ytdlp-path", "yt-dlp", "path to the yt-dlp binary")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
	}

	viper.SetEnvPrefix("DRAGDROP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	config = buildConfig()
	logger = buildLogger(config.Log.Level)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	cfg.Spotify.ClientID = viper.GetString("spotify-client-id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify-client-secret")
	cfg.SoundCloud.ClientID = viper.GetString("soundcloud-client-id")
	cfg.SoundCloud.ClientSecret = viper.GetString("soundcloud-client-secret")
	cfg.YouTube.APIKey = viper.GetString("youtube-api-key")

	cfg.Download.OutputDir = viper.GetString("output")
	if cfg.Download.OutputDir == "" {
		cfg.Download.OutputDir = "."
	}
	cfg.Download.YTDLPPath = viper.GetString("ytdlp-path")
	if cfg.Download.YTDLPPath == "" {
		cfg.Download.YTDLPPath = "yt-dlp"
	}

	cfg.Log.Level = viper.GetString("log-level")

	return cfg
}

func buildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func validateConfig() error {
	if config.Spotify.ClientID == "" && config.SoundCloud.ClientID == "" {
		return fmt.Errorf("at least one catalog platform needs credentials (Spotify or SoundCloud)")
	}

	if config.Spotify.ClientID != "" && config.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify client secret is required")
	}

	if config.SoundCloud.ClientID != "" && config.SoundCloud.ClientSecret == "" {
		return fmt.Errorf("soundcloud client secret is required")
	}

	if config.YouTube.APIKey == "" {
		return fmt.Errorf("youtube API key is required")
	}

	return nil
}

func run(_ *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := validateConfig(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Dropped input is free-form: URLs may arrive embedded in text, with
	// share-link tracking params, or several per line.
	urls := text.ExtractURLs(strings.Join(args, "\n"))
	if len(urls) == 0 {
		var err error
		urls, err = readURLs(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read URLs: %w", err)
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no track URLs given")
	}

	videoClient := youtube.NewClient(&config.YouTube, logger.Named("youtube"))
	matcher := core.NewMatcher(videoClient, logger.Named("matcher"))

	catalogs := make(map[platform.Platform]core.CatalogClient)
	if config.Spotify.ClientID != "" {
		catalogs[platform.Spotify] = spotify.NewClient(ctx, &config.Spotify, logger.Named("spotify"))
	}
	if config.SoundCloud.ClientID != "" {
		catalogs[platform.SoundCloud] = soundcloud.NewClient(&config.SoundCloud, logger.Named("soundcloud"))
	}

	resolver := core.NewResolver(catalogs, matcher, logger.Named("resolver"))
	worklist := core.NewWorklist()

	stdin := bufio.NewReader(os.Stdin)
	fallback := func(_ context.Context) string {
		fmt.Print("No matching video found. Please enter a YouTube URL (empty to skip): ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return ""
		}
		return strings.TrimSpace(line)
	}

	// Resolution is strictly sequential: one URL finishes before the
	// next starts. A failed URL only skips itself.
	for _, rawURL := range urls {
		fmt.Printf("Scanning URL: %s\n", rawURL)

		track, err := resolver.Resolve(ctx, rawURL, fallback)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		worklist.Add(track)
		fmt.Printf("Song added: %s\n", track.String())
	}

	if worklist.Len() == 0 {
		return fmt.Errorf("no tracks resolved")
	}

	if err := os.MkdirAll(config.Download.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	p := pipeline.New(
		pipeline.NewYTDLPExtractor(config.Download.YTDLPPath, logger.Named("ytdlp")),
		pipeline.NewHTTPArtworkFetcher(config.Download.HTTPTimeout),
		pipeline.NewID3Tagger(),
		logger.Named("pipeline"),
	)

	fmt.Println("Starting download...")
	results := p.RunBatch(ctx, worklist.Tracks(), config.Download.OutputDir)
	for _, result := range results {
		fmt.Println(pipeline.StatusMessage(result))
	}

	// The working set is cleared only after the whole batch finished,
	// regardless of individual failures.
	worklist.Clear()

	fmt.Println("Download complete.")
	return nil
}

// readURLs reads lines until EOF and extracts every URL found in them.
func readURLs(r *os.File) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		urls = append(urls, text.ExtractURLs(scanner.Text())...)
	}
	return urls, scanner.Err()
}
