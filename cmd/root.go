// cmd/root.go
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/estudosdevops/argo-manager/cmd/app"
	"github.com/estudosdevops/argo-manager/cmd/cluster"
	"github.com/estudosdevops/argo-manager/cmd/project"
	"github.com/estudosdevops/argo-manager/internal/executor"
	"github.com/estudosdevops/argo-manager/internal/logger"
)

var cfgFile string

// RootCmd is the root command of the application.
var RootCmd = &cobra.Command{
	Use:   "argo-manager",
	Short: "argo-manager - run Argo CD commands across multiple clusters",
	Long: `argo-manager wraps the argocd CLI for fleets: it resolves a cluster
selector against your registered Argo CD contexts, runs the same command
against every selected cluster concurrently, and merges the results into a
single report with one entry per cluster.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || viper.GetBool("no-color") {
			color.NoColor = true
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetDebug(verbose)
	},
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(cluster.ClusterCmd)
	RootCmd.AddCommand(app.AppCmd)
	RootCmd.AddCommand(project.ProjectCmd)

	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default is $HOME/.argo-manager.yaml)")
	RootCmd.PersistentFlags().StringP("cluster", "c", "all", "cluster selector: 'all', a comma-separated list of context names, or glob patterns (e.g. 'prod-*')")
	RootCmd.PersistentFlags().Int("concurrency", executor.DefaultConcurrency, "maximum number of clusters contacted simultaneously")
	RootCmd.PersistentFlags().Duration("timeout", executor.DefaultTimeout, "per-cluster command timeout")
	RootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")
	RootCmd.PersistentFlags().String("argocd-path", "argocd", "path to the argocd binary")
	RootCmd.PersistentFlags().String("argocd-config", "", "path to the argocd CLI config (default is ~/.config/argocd/config)")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".argo-manager")
	}

	viper.SetEnvPrefix("ARGO_MANAGER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Get().Debug("Using configuration file", "path", viper.ConfigFileUsed())
	}
}
