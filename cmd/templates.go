package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-agent/internal/magicresume"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	Run: func(_ *cobra.Command, _ []string) {
		for _, tpl := range magicresume.Templates() {
			fmt.Printf("%-12s %s: %s\n", tpl.ID, tpl.Name, tpl.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
