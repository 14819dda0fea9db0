package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/issuedown/issuedown/internal/config"
	"github.com/issuedown/issuedown/internal/export"
	"github.com/issuedown/issuedown/internal/github"
)

var cfg = config.Config{}

var rootCmd = &cobra.Command{
	Use:   "issuedown <owner>/<repo>[#issue_number]",
	Short: "Export GitHub issues to markdown files",
	Long: `Issuedown exports issues (and their comments) from a GitHub repository
into markdown files on local disk, one file per issue.

The target is of the form: owner/repo[#issue_number]. With an issue number,
only that issue is exported; otherwise all open issues are.

Authentication uses the GITHUB_TOKEN environment variable, optionally
sourced from a .env file in the working directory.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true, // Don't show usage on error
	SilenceErrors: true, // main prints the error and maps the exit code
	PreRun:        loadRootConfig,
	RunE:          runExport,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(_ *cobra.Command, _ []string) {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg.GitHubToken = config.Load().GitHubToken
}

func init() {
	rootCmd.Flags().StringVarP(&cfg.OutputDir, "path", "p", config.DefaultOutputDir, "Output directory for markdown files")
	rootCmd.Flags().StringVarP(&cfg.IssueState, "state", "s", config.DefaultIssueState, "Fetch issues that are open, closed, or all")
}

func runExport(_ *cobra.Command, args []string) error {
	target, err := export.ParseTarget(args[0])
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := setupContext()

	githubClient := createGithubClient(ctx, cfg.GitHubToken)
	issues := github.NewIssueService(githubClient)

	log.Printf("Exporting issues from %s to %s", target, cfg.OutputDir)

	exporter := export.New(issues, cfg.OutputDir, cfg.IssueState)
	return exporter.Run(ctx, target)
}
