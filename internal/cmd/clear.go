package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every job from the target table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cron.Clear(target())
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
