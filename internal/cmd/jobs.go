package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the titles of every job in the target table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cron.Parse(target())
		if err != nil {
			return err
		}
		for _, title := range table.Titles() {
			fmt.Fprintln(cmd.OutOrStdout(), title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
