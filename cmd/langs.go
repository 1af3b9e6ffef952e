package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/langs"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	langsRoot   string
	checkFilter string
	checkGroup  string
	checkCSV    string
	moveFrom    string
	moveTo      string
	moveItems   string
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "Audit and maintain translation dictionaries",
	Long: `Works on a checkout holding code/apps/<group>/locale/<lang>/messages.yaml
and the generic code/api/locale/<lang>/messages.yaml.`,
}

var langsCheckCmd = &cobra.Command{
	Use:   "check <lang>",
	Short: "Report translatable texts and whether they have a dictionary key",
	Example: `  saltseed langs check es_ES
  saltseed langs check ca_ES --group sales --filter missing --csv missing.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runLangsCheck,
}

var langsMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move dictionary keys between groups",
	Long: `Removes the lines defining the given keys from every source dictionary
and appends them to every target dictionary, for each language found in
the sources. Use "global" to address the generic dictionary.`,
	Example: `  saltseed langs move --from sales,crm --to global --items customer,invoice_date`,
	Args:    cobra.NoArgs,
	RunE:    runLangsMove,
}

func init() {
	rootCmd.AddCommand(langsCmd)
	langsCmd.AddCommand(langsCheckCmd)
	langsCmd.AddCommand(langsMoveCmd)

	langsCmd.PersistentFlags().StringVar(&langsRoot, "root", "", "Checkout holding code/apps and code/api (default from config)")

	langsCheckCmd.Flags().StringVar(&checkFilter, "filter", "", "Only show rows that are missing or present")
	langsCheckCmd.Flags().StringVar(&checkGroup, "group", "", "Only check one app group")
	langsCheckCmd.Flags().StringVar(&checkCSV, "csv", "", "Also write the rows to this CSV file")

	langsMoveCmd.Flags().StringVar(&moveFrom, "from", "", "Comma separated source groups")
	langsMoveCmd.Flags().StringVar(&moveTo, "to", "", "Comma separated target groups")
	langsMoveCmd.Flags().StringVar(&moveItems, "items", "", "Comma separated keys to move")
	langsMoveCmd.MarkFlagRequired("from")
	langsMoveCmd.MarkFlagRequired("to")
	langsMoveCmd.MarkFlagRequired("items")
}

func langsConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if langsRoot != "" {
		cfg.RootDir = langsRoot
	}
	return cfg, nil
}

func runLangsCheck(cmd *cobra.Command, args []string) error {
	cfg, err := langsConfig()
	if err != nil {
		return err
	}

	report, err := langs.Check(langs.CheckOptions{
		AppsDir: cfg.AppsDir(),
		APIDir:  cfg.APIDir(),
		Lang:    args[0],
		Group:   checkGroup,
		Filter:  checkFilter,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	report.Print(os.Stdout)

	for _, e := range report.Errors {
		color.Yellow("⚠️  Skipped %s", e)
	}

	if checkCSV != "" {
		if err := report.SaveCSV(checkCSV); err != nil {
			return err
		}
		color.Cyan("💾 Saved %d row(s) to %s", len(report.Rows), checkCSV)
	}

	counts := report.Counts()
	fmt.Println()
	color.Green("✅ Present: %d", counts[langs.StatusPresent])
	if n := counts[langs.StatusMissing]; n > 0 {
		color.Red("❌ Missing: %d", n)
	}
	if n := counts[langs.StatusMissingInOtherGroup]; n > 0 {
		color.Yellow("⚠️  Missing here but defined in another group: %d", n)
	}
	return nil
}

func runLangsMove(cmd *cobra.Command, args []string) error {
	cfg, err := langsConfig()
	if err != nil {
		return err
	}

	results, err := langs.Move(langs.MoveOptions{
		AppsDir: cfg.AppsDir(),
		APIDir:  cfg.APIDir(),
		From:    langs.ParseList(moveFrom),
		To:      langs.ParseList(moveTo),
		Items:   langs.ParseList(moveItems),
	})
	if errors.Is(err, langs.ErrNoItems) {
		return fmt.Errorf("%w: pass keys with --items", err)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		color.Yellow("⚠️  No locale directories found in the sources")
		return nil
	}

	for _, r := range results {
		if r.Moved == 0 {
			fmt.Printf("[%s] No keys found to move\n", r.Lang)
			continue
		}
		for _, target := range r.Targets {
			color.Green("[%s] Moved %d keys to %s", r.Lang, r.Moved, target)
		}
	}
	return nil
}
