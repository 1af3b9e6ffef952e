package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/template"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a saltseed project",
	Long:  `Write saltseed.config.json, create the output folders and add DATABASE_URL to .env.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.SQLite
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(dbType template.DatabaseType) error {
	tmpl := template.NewProjectTemplate(dbType)

	if err := config.InitializeProject(tmpl.Provider()); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	directories := tmpl.GetDirectoryStructure(cfg.OutputDir, cfg.Emails.OutputDir)
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized saltseed project with %s database support", dbType)
	fmt.Println()
	fmt.Println("📁 Output folders:")
	for _, dir := range directories {
		fmt.Printf("   %s/\n", dir)
	}
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.FileName)

	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println()
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   saltseed generate --all   # Write every sample table\n")
	fmt.Printf("   saltseed verify           # Check the generated files\n")
	fmt.Printf("   saltseed load             # Apply them to DATABASE_URL\n")

	return nil
}

// handleEnvFile adds the DATABASE_URL example to .env unless the file
// already defines it.
func handleEnvFile(envLine string) error {
	const envPath = ".env"

	existing, err := os.ReadFile(envPath)
	if os.IsNotExist(err) {
		return os.WriteFile(envPath, []byte(envLine), 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", envPath, err)
	}

	vars, err := godotenv.Unmarshal(string(existing))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", envPath, err)
	}
	if _, ok := vars["DATABASE_URL"]; ok {
		return nil
	}

	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n# Added by saltseed\n" + envLine

	return os.WriteFile(envPath, []byte(content), 0644)
}
