package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zanybarlee/a8-manpower/internal/confirm"
)

var clearCmd = &cobra.Command{
	Use:   "clear-matches",
	Short: "Delete every matched candidate of the current session user",
	RunE: func(_ *cobra.Command, _ []string) error {
		var confirmer confirm.Confirmer = confirm.Prompt{}
		if !confirmer.Confirm("Delete all matched candidates?") {
			fmt.Println("aborted")
			return nil
		}

		if _, err := call("POST", "/shortlist/clear", nil); err != nil {
			return err
		}

		fmt.Println("matches cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
