package commands

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"productboard-mcp/internal/config"
	"productboard-mcp/internal/logging"
	"productboard-mcp/internal/mcp"
	"productboard-mcp/internal/productboard"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	pbClient productboard.Client
)

var rootCmd = &cobra.Command{
	Use:   "productboard-mcp",
	Short: "MCP server exposing the Productboard REST API as assistant tools",
	Long: `An MCP server that lets AI assistants read and manage Productboard data:
products, features, notes, releases, objectives, initiatives, key results,
companies, users and custom fields. Speaks the MCP protocol over stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		pbClient = productboard.New(cfg.Productboard)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("productboard-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer(pbClient, Version)

		group, ctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			log.Info().Msg("MCP server starting stdio loop")
			return server.Run(ctx)
		})
		if err := group.Wait(); err != nil && ctx.Err() == nil {
			return err
		}
		log.Info().Msg("MCP server stopped")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(docsCmd)
}
