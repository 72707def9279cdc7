package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
)

var saveCmd = &cobra.Command{
	Use:   "save FILEPATH",
	Short: "Save the raw text of the target table to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cron.Save(target(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
