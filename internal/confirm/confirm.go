// Package confirm abstracts the human confirmation required before
// destructive operations such as deleting a job description.
package confirm

import "github.com/manifoldco/promptui"

// Confirmer answers whether a destructive operation may proceed.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Static is a Confirmer carrying a fixed decision, used when the confirmation
// already happened elsewhere (e.g. a confirm dialog in the web client,
// transported as a request flag).
type Static bool

// Confirm returns the fixed decision.
func (s Static) Confirm(string) bool { return bool(s) }

// Prompt asks on the terminal via promptui. Used by shortlistctl.
type Prompt struct{}

// Confirm shows a Yes/No select and returns true only for Yes. Any prompt
// error (including Ctrl-C) counts as a decline.
func (Prompt) Confirm(prompt string) bool {
	sel := promptui.Select{
		Label: prompt,
		Items: []string{"Yes", "No"},
	}
	_, answer, err := sel.Run()
	if err != nil {
		return false
	}
	return answer == "Yes"
}
