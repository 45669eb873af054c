package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zanybarlee/a8-manpower/internal/confirm"
)

var deleteJDCmd = &cobra.Command{
	Use:   "delete-jd <id>",
	Short: "Delete a stored job description",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		jobID := args[0]

		var confirmer confirm.Confirmer = confirm.Prompt{}
		if !confirmer.Confirm(fmt.Sprintf("Delete job description %s?", jobID)) {
			fmt.Println("aborted")
			return nil
		}

		// The confirm flag carries the decision made above.
		if _, err := call("DELETE", "/job-descriptions/"+jobID+"?confirm=true", nil); err != nil {
			return err
		}

		fmt.Println("job description deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteJDCmd)
}
