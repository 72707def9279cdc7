package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tekktrik/cronberry/cron"
)

var removeCmd = &cobra.Command{
	Use:   "remove JOB_TITLE...",
	Short: "Remove titled jobs from the target table",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

var removeIgnoreMissing bool

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVarP(&removeIgnoreMissing, "ignore-missing", "i", false, "do not error on titles missing from the table")
}

func runRemove(cmd *cobra.Command, args []string) error {
	seen := make(map[string]bool, len(args))
	for _, title := range args {
		if seen[title] {
			return fmt.Errorf("duplicate job titles provided")
		}
		seen[title] = true
	}

	for _, title := range args {
		if err := cron.Remove(target(), title, removeIgnoreMissing); err != nil {
			return err
		}
	}
	return nil
}
