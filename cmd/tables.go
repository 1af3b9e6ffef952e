package cmd

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/saltseed/internal/samples"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables saltseed can generate",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		gens := samples.All()
		for _, group := range samples.Groups() {
			color.Cyan("📦 %s", group)
			for _, g := range gens {
				if g.Group != group {
					continue
				}
				if len(g.Tables) > 1 {
					fmt.Printf("   %-28s (%s)\n", g.Name, strings.Join(g.Tables[1:], ", "))
				} else {
					fmt.Printf("   %s\n", g.Name)
				}
			}
		}
		fmt.Println()
		fmt.Printf("Total: %d generators\n", len(gens))
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
