package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
	"github.com/tekktrik/cronberry/crontab"
)

var addCmd = &cobra.Command{
	Use:   "add CRONTAB",
	Short: "Add jobs from a crontab file to the target table",
	Long: `Parse the titled jobs in CRONTAB and merge them into the target
table. Without --overwrite, a title that already exists in the target
is an error and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addOverwrite bool
	addTitle     string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolVarP(&addOverwrite, "overwrite", "o", false, "overwrite jobs that already exist in the target table")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "only add the job with this title from CRONTAB")
}

func runAdd(cmd *cobra.Command, args []string) error {
	table, err := cron.Parse(cron.FileTab(args[0]))
	if err != nil {
		return err
	}

	jobs := table.Jobs()
	if addTitle != "" {
		selected := make([]*crontab.Job, 0, 1)
		for _, job := range jobs {
			if job.Title == addTitle {
				selected = append(selected, job)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("job title %q was not present in %s", addTitle, args[0])
		}
		jobs = selected
	}

	return cron.Add(target(), jobs, addOverwrite)
}
