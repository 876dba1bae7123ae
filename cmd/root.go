package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve a single-page personal portfolio",
	Long: `portfolio renders a single-page personal portfolio (about, skills,
projects, certifications, education, contact) from a YAML content file and
serves it with HTMX-driven navigation, a "show more" disclosure and a
contact form that opens a pre-filled email draft.`,
	// Running the bare command serves the site.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
}
