package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/config"
	"github.com/s0up4200/pokedex/display"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/pokeapi"
)

var (
	version   = "dev"
	buildTime = "unknown"

	cfgFile   string
	baseURL   string
	cfg       *config.Config
	logger    = zerolog.Nop()
	client    *pokeapi.Client
	compiler  filter.Compiler
	formatter = display.NewConsoleFormatter()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Look up Pokemon, moves, abilities and items from PokeAPI",
	Long: `pokedex is a CLI for the public PokeAPI service. It fetches resources
by id or name, lists and filters endpoints, searches names with fuzzy
matching and downloads sprites. Responses are cached for the lifetime
of a command and requests are rate friendly.`,
	SilenceUsage: true,
}

// SetVersion records build information, set from main.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := executeContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = baseURL
	}

	logger = setupLogger(cfg.Logging)

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("pokedex/%s (+https://github.com/s0up4200/pokedex)", version)
	}

	client, err = pokeapi.Connect(cmd.Context(),
		pokeapi.WithBaseURL(cfg.API.BaseURL),
		pokeapi.WithUserAgent(userAgent),
		pokeapi.WithTimeout(cfg.API.Timeout),
		pokeapi.WithCacheSize(cfg.Cache.Size),
		pokeapi.WithSpriteCacheSize(cfg.Cache.SpriteSize),
		pokeapi.WithLogger(logger.With().Str("component", "pokeapi").Logger()),
	)
	if err != nil {
		return fmt.Errorf("failed to create PokeAPI client: %w", err)
	}

	compiler = filter.NewExprCompiler(filter.WithCache(cfg.Cache.FilterSize))

	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("user_agent", userAgent).
		Msg("Initialized")

	return nil
}

// executeContext runs the root command and releases the client afterwards.
// Cobra skips post-run hooks when RunE fails, so closing happens here.
func executeContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeApp(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// closeApp releases the client
func closeApp() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
