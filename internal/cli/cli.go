package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pokespeare/pkg/buildinfo"
	"github.com/matzehuels/pokespeare/pkg/config"
	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokespeare/pkg/pokedex"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pokespeare"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Pokespeare serves Pokémon descriptions, optionally in a fun dialect",
		Long:          `Pokespeare looks up Pokémon species metadata and can rewrite the description in Yoda or Shakespeare speak. It runs as an HTTP service or as a one-shot lookup from the terminal.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, buildinfo.String())
			return err
		},
	}
}

// =============================================================================
// Shared Options
// =============================================================================

// upstreamOptions are the flags shared by commands that talk to the upstreams.
type upstreamOptions struct {
	configPath         string
	pokeapiURL         string
	funtranslationsURL string
	timeout            time.Duration
}

func (o *upstreamOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&o.pokeapiURL, "pokeapi-url", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	cmd.Flags().StringVar(&o.funtranslationsURL, "funtranslations-url", funtranslations.DefaultBaseURL, "FunTranslations base URL")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "per-request upstream timeout (e.g. 5s)")
}

// load reads the config file and applies explicitly set flags on top.
func (o *upstreamOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("pokeapi-url") {
		cfg.PokeAPI.BaseURL = o.pokeapiURL
	}
	if flags.Changed("funtranslations-url") {
		cfg.FunTranslations.BaseURL = o.funtranslationsURL
	}
	if flags.Changed("timeout") {
		cfg.PokeAPI.Timeout = config.Duration{Duration: o.timeout}
		cfg.FunTranslations.Timeout = config.Duration{Duration: o.timeout}
	}
	return cfg, nil
}

// =============================================================================
// Service Factory
// =============================================================================

// newService wires the upstream clients described by cfg into a lookup service.
func newService(cfg config.Config, logger *log.Logger) *pokedex.Service {
	species := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout.Duration)
	translator := funtranslations.NewClient(cfg.FunTranslations.BaseURL, cfg.FunTranslations.Timeout.Duration)
	return pokedex.NewService(species, translator, logger)
}
