package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/jobmatch/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	env        string
}

// loadConfig reads --config when given, otherwise config/<env>.yaml.
func (g *globalFlags) loadConfig() (config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Load(g.env)
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "jobmatch",
		Short:         "Score how well a resume matches a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Environment (local, dev, prod)")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newMatchCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
