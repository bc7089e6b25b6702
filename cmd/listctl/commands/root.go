// Package commands implements the listctl subcommands.
package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/logger"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
)

// options are the flags shared by every subcommand.
type options struct {
	market   string
	logLevel string

	log          *logger.Logger
	consolidator *grocery.Consolidator
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the listctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "listctl",
		Short:        "Consolidate recipes into grocery lists",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := retail.ForMarket(opts.market)
			if err != nil {
				return err
			}
			opts.log = logger.New(logger.Config{
				Writer: cmd.ErrOrStderr(),
				Level:  logger.ParseLevel(opts.logLevel),
			})
			opts.consolidator = grocery.New(catalog, opts.log.Component("grocery").Logger)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.market, "market", retail.MarketUS, "retail market for package suggestions ("+strings.Join(retail.Markets(), ", ")+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(consolidateCmd(opts), seedCmd(opts))
	return root
}
