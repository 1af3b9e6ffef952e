package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file|dir...]",
	Short: "Check generated sample files",
	Long: `Decompresses every .sql.gz file and checks that it holds a single INSERT
statement whose rows all match its column list. Without arguments the
configured output directory is checked.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		args = []string{cfg.OutputDir}
	}

	files, err := collectSQLFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("⚠️  No %s files found", sqlfile.Extension)
		return nil
	}

	failed := 0
	for _, file := range files {
		summary, err := sqlfile.Inspect(file)
		if err != nil {
			failed++
			color.Red("❌ %v", err)
			continue
		}
		if !summary.OK() {
			failed++
			color.Red("❌ %s: %d row(s) do not have %d values: %s",
				file, len(summary.Mismatches), len(summary.Columns), formatRows(summary.Mismatches))
			continue
		}
		logger.Debug("verified file",
			zap.String("path", file),
			zap.String("table", summary.Table),
			zap.Int("columns", len(summary.Columns)),
			zap.Int("rows", summary.Rows))
		fmt.Printf("   ✅ %-45s %-28s %6d rows\n", file, summary.Table, summary.Rows)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed verification", failed, len(files))
	}
	color.Green("✅ All %d file(s) are valid", len(files))
	return nil
}

// collectSQLFiles expands directories into the fixture files they hold.
func collectSQLFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := sqlfile.ListFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func formatRows(rows []int) string {
	const limit = 10
	parts := make([]string, 0, limit)
	for i, r := range rows {
		if i == limit {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprint(r))
	}
	return strings.Join(parts, ", ")
}
