package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
	"github.com/tekktrik/cronberry/crontab"
)

var enterCmd = &cobra.Command{
	Use:   "enter JOB_TITLE CRONJOB",
	Short: "Add a single cron job given on the command line",
	Long: `Add CRONJOB (a cron line such as '0 12 * * * some-command' or
'@daily some-command') to the target table under JOB_TITLE, with the
default environment header.`,
	Args: cobra.ExactArgs(2),
	RunE: runEnter,
}

var enterOverwrite bool

func init() {
	rootCmd.AddCommand(enterCmd)

	enterCmd.Flags().BoolVarP(&enterOverwrite, "overwrite", "o", false, "overwrite the job if its title already exists in the target table")
}

func runEnter(cmd *cobra.Command, args []string) error {
	job, err := crontab.ParseJob(args[0], args[1])
	if err != nil {
		return err
	}
	return cron.Add(target(), []*crontab.Job{job}, enterOverwrite)
}
