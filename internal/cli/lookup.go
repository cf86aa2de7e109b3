package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	apierrors "github.com/matzehuels/pokespeare/pkg/errors"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokespeare/pkg/pokedex"
)

func (c *CLI) lookupCommand() *cobra.Command {
	var (
		opts       upstreamOptions
		translated bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up a single Pokémon species",
		Long: `Look up a single Pokémon species and print its metadata.

With --translated the description is rewritten in Yoda speak for cave
dwellers and legendaries, and in Shakespearean English otherwise.`,
		Example: `  pokespeare lookup ditto
  pokespeare lookup mewtwo --translated
  pokespeare lookup zubat --translated --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if err := applyLogLevel(logger, cfg.Log.Level); err != nil {
				return err
			}
			svc := newService(cfg, logger)
			name := args[0]

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Looking up %s...", name))
			spinner.Start()
			prog := newProgress(logger)

			var info *pokeapi.SpeciesInfo
			if translated {
				info, err = svc.TranslatedInfo(ctx, name)
			} else {
				info, err = svc.Info(ctx, name)
			}

			if err != nil {
				apiErr := apierrors.From(err)
				logger.Debug("lookup failed", "name", name, "err", err)
				if asJSON {
					spinner.Stop()
					_ = writeIndentedJSON(cmd, apiErr)
				} else {
					spinner.StopWithError(fmt.Sprintf("%s (%s)", apiErr.Message, apiErr.Code))
				}
				return apiErr
			}

			if asJSON {
				spinner.Stop()
				return writeIndentedJSON(cmd, info)
			}
			spinner.StopWithSuccess(fmt.Sprintf("Found %s", info.Name))
			prog.done("Looked up " + info.Name)

			dialect := ""
			if translated {
				dialect = pokedex.SelectDialect(info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSpecies(info, dialect))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&translated, "translated", "t", false, "translate the description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API JSON instead of styled output")

	return cmd
}

func writeIndentedJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
