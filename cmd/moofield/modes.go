package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moofield/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long:  `Shows every mode that can be played or simulated.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'moofield play <id>' to play a mode.")
}
