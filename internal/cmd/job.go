package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
)

var jobCmd = &cobra.Command{
	Use:   "job JOB_TITLE",
	Short: "Print the cron line of one titled job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := cron.Job(target(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), job.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
}
