// Package collab defines the narrow interface the engine calls into for
// interactive prompts and status reporting, and a console implementation
// used by commands that run without a real UI shell.
package collab

import "fmt"

// ConfirmResult is the outcome of a yes/no/cancel prompt.
type ConfirmResult int

const (
	ConfirmNo ConfirmResult = iota
	ConfirmYes
	ConfirmCancel
)

// UICollaborator is the seam between the engine and whatever is presenting
// progress and prompts to a human: a terminal, a windowed shell, or nothing
// at all during a silent backup.
type UICollaborator interface {
	Status(msg string)
	// Progress reports 0..100, or -1 for indeterminate.
	Progress(percent int)
	PromptChoice(title, prompt string, options []string) (index int, cancelled bool)
	PromptText(title, prompt, defaultValue string) (value string, cancelled bool)
	Confirm(title, msg string) ConfirmResult
	Notify(title, body string, success bool)
	// ActivateRequested is invoked when another launched instance asked this
	// one to raise/focus itself.
	ActivateRequested()
}

// ConsoleCollaborator implements UICollaborator on stdout, with every
// prompt defaulting to cancellation since there is no operator to answer
// them. It exists so engine code is runnable from commands that have no
// windowed UI attached.
type ConsoleCollaborator struct{}

func (ConsoleCollaborator) Status(msg string) {
	fmt.Println(msg)
}

func (ConsoleCollaborator) Progress(percent int) {
	if percent < 0 {
		fmt.Println("progress: working...")
		return
	}
	fmt.Printf("progress: %d%%\n", percent)
}

func (ConsoleCollaborator) PromptChoice(title, prompt string, options []string) (int, bool) {
	return 0, true
}

func (ConsoleCollaborator) PromptText(title, prompt, defaultValue string) (string, bool) {
	return "", true
}

func (ConsoleCollaborator) Confirm(title, msg string) ConfirmResult {
	return ConfirmCancel
}

func (ConsoleCollaborator) Notify(title, body string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	fmt.Printf("[%s] %s: %s\n", status, title, body)
}

func (ConsoleCollaborator) ActivateRequested() {
	fmt.Println("another instance requested activation")
}
