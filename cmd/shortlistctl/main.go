// shortlistctl is a small operator CLI for the shortlist service.
//
// It talks to a running shortlist-service over its REST API:
//
//	shortlistctl match "job description text" [--role ...]
//	shortlistctl clear-matches
//	shortlistctl delete-jd <id>
//	shortlistctl version
//
// Destructive commands ask for confirmation on the terminal first.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
