package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DixDev1621/portfolio/internal/config"
	"github.com/DixDev1621/portfolio/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check [content.yaml]",
	Short: "Validate a content file and print its section catalog",
	Long: `check loads a content file (or the configured one, or the built-in
default) and reports every problem: duplicate or unknown section ids and
missing required fields.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			path = cfg.ContentFile
		}
		p, err := content.Load(path)
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func printCatalog(w io.Writer, p *content.Portfolio) {
	fmt.Fprintf(w, "%s: %d sections, %d projects (+%d more), %d certifications\n",
		p.Profile.Name, p.Catalog().Len(), len(p.Projects), len(p.ExtraProjects), len(p.Certifications))
	for _, s := range p.Catalog().Sections() {
		fmt.Fprintf(w, "  #%-16s %s\n", s.ID, s.Label)
	}
}
