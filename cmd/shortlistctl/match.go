package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var jobRole string

var matchCmd = &cobra.Command{
	Use:   "match [job description text]",
	Short: "Run a match against the given job description text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return errors.New("job description text must not be empty")
		}

		raw, err := call("POST", "/shortlist/match", map[string]string{
			"jobDescription": text,
			"jobRole":        jobRole,
		})
		if err != nil {
			return err
		}

		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&jobRole, "role", "", "restrict matching to this role")
	rootCmd.AddCommand(matchCmd)
}
