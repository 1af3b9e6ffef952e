package cmd

import (
	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/mailgen"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	emailsOut         string
	emailsCount       int
	emailsSeed        uint64
	emailsAttachments string
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Generate a sample mailbox",
	Long: `Writes gzip-compressed RFC 5322 messages (email_0001.eml.gz onwards)
alternating personal and business mail. About half of them carry a JPEG
or PDF attachment.`,
	Args: cobra.NoArgs,
	RunE: runEmails,
}

func init() {
	rootCmd.AddCommand(emailsCmd)

	emailsCmd.Flags().StringVarP(&emailsOut, "out", "o", "", "Output directory (default from config)")
	emailsCmd.Flags().IntVarP(&emailsCount, "count", "n", 0, "Number of messages (default from config)")
	emailsCmd.Flags().Uint64Var(&emailsSeed, "seed", 0, "Random seed, 0 for a random run (default from config)")
	emailsCmd.Flags().StringVar(&emailsAttachments, "attachments", "", "Also save the attachment pool into this directory")
}

func runEmails(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if emailsOut != "" {
		cfg.Emails.OutputDir = emailsOut
	}
	if emailsCount != 0 {
		cfg.Emails.Count = emailsCount
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = emailsSeed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	color.Cyan("✉️  Generating %d email(s) into %s...", cfg.Emails.Count, cfg.Emails.OutputDir)
	paths, err := mailgen.Generate(mailgen.Options{
		Dir:            cfg.Emails.OutputDir,
		Count:          cfg.Emails.Count,
		Seed:           cfg.Seed,
		AttachmentsDir: emailsAttachments,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if emailsAttachments != "" {
		color.Cyan("🖼️  Saved attachments into %s", emailsAttachments)
	}
	color.Green("✅ Wrote %d email(s) into %s", len(paths), cfg.Emails.OutputDir)
	return nil
}
