package main

import "github.com/atotto/clipboard"

// systemClipboard adapts the platform clipboard to the orchestrator's
// collaborator contract.
type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
