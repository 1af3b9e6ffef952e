package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/loader"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	loadForce  bool
	loadMark   bool
	loadSchema string
)

var loadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load generated sample files into the database",
	Long: `Applies every .sql.gz file in dir (default: the configured output
directory) to the database in DATABASE_URL. Each file runs in its own
transaction and is recorded with its checksum, so files that were already
loaded are skipped. Use --force to reload them: the rows of their table are
replaced. Files must be rendered in the dialect of the database provider.`,
	Example: `  saltseed load --schema saltos.sql
  saltseed load sample --force
  saltseed load --mark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadForce, "force", false, "Reload files that were already loaded, replacing their rows")
	loadCmd.Flags().BoolVar(&loadMark, "mark", false, "Record files as loaded without executing them")
	loadCmd.Flags().StringVar(&loadSchema, "schema", "", "SQL script (plain or .gz) to run before loading")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := cfg.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}
	if loadMark && loadSchema != "" {
		return fmt.Errorf("--mark cannot be combined with --schema")
	}
	if want := config.DialectFor(cfg.Database.Provider); cfg.Dialect != want {
		color.Yellow("⚠️  Config dialect %s does not match provider %s, files must be generated with --dialect %s",
			cfg.Dialect, cfg.Database.Provider, want)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan("🔌 Connecting to %s database...", cfg.Database.Provider)
	l, err := loader.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer l.Close()

	if loadSchema != "" {
		if err := l.ApplySchema(ctx, loadSchema); err != nil {
			return err
		}
	}

	results, err := l.Run(ctx, dir, loader.Options{Force: loadForce, Mark: loadMark})
	if err != nil {
		return err
	}

	counts := map[loader.Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}

	fmt.Println()
	if n := counts[loader.StatusMarked]; n > 0 {
		color.Green("✅ Marked %d file(s) as loaded", n)
	} else {
		color.Green("✅ Loaded %d file(s)", counts[loader.StatusLoaded])
	}
	if n := counts[loader.StatusSkipped]; n > 0 {
		fmt.Printf("⏭️  Skipped %d file(s) already loaded\n", n)
	}
	if n := counts[loader.StatusChanged]; n > 0 {
		color.Yellow("⚠️  %d file(s) changed since they were loaded, rerun with --force to reload", n)
	}
	return nil
}
