package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/Zenith/internal/config"
)

// NewRootCmd собирает корневую команду zenith.
func NewRootCmd(version string) *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:           "zenith",
		Short:         "Zenith — cached task runner for monorepos",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", config.DefaultFile, "Config file (JSON or YAML)")
	flags.BoolVar(&opts.Debug, "debug", false, "Turn debugging information on")
	flags.StringVar(&opts.Monorepo, "monorepo", "", "Path to the monorepo root")
	flags.BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	rootCmd.MarkPersistentFlagRequired("monorepo")

	sessionFn := func(cmd *cobra.Command) (*Session, error) {
		opts.ConfigExplicit = cmd.Flag("config").Changed
		return OpenSession(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		NewRunCmd(sessionFn),
		NewAffectedCmd(sessionFn),
	)

	return rootCmd
}
