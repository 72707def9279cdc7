// Package cmd holds the cronberry CLI verbs.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tekktrik/cronberry/cron"
	"github.com/tekktrik/cronberry/log/hook"
)

var (
	rootFile  string
	rootDebug bool
	rootJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "cronberry",
	Short: "Work with multiple titled cron jobs within a single cron table",
	Long: `cronberry tags each cron job with a title comment so individual
entries in a shared cron table can be added, replaced, or removed
without disturbing unrelated entries.

By default the user's installed crontab is the target; pass -f/--file
to work against a crontab file instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if viper.GetBool("json") {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
		hook.SplitStreams(logrus.StandardLogger(), os.Stdout, os.Stderr)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// target resolves the table the current invocation operates on.
func target() cron.Source {
	return cron.Select(viper.GetString("file"))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFile, "file", "f", "", "crontab file to use instead of the user's crontab")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rootJSON, "json", false, "log in JSON format")

	viper.SetEnvPrefix("CRONBERRY")
	viper.AutomaticEnv()
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
