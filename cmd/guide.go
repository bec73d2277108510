package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/guide"
	"github.com/weldyapp/weldy/internal/progress"
)

var (
	guideOutput   string
	guideTitle    string
	guideMarkdown bool
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Generate a static HTML troubleshooting guide",
	Long:  `Renders every defect combination, its causes and fixes, the thickness presets and the things-to-try checklist into a static HTML site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		a, err := buildApp(c)
		if err != nil {
			return err
		}

		tree := a.tree
		if tree == nil {
			if tree, err = decisiontree.Load(c.DecisionTree); err != nil {
				return err
			}
		}

		g := guide.NewGenerator(guideOutput, guideTitle)
		g.WriteMarkdown = guideMarkdown
		g.Reporter = progress.NewReporter("Building guide")

		n, err := g.Generate(guide.Pages(a.kb, tree))
		if err != nil {
			return fmt.Errorf("generating guide: %w", err)
		}
		fmt.Printf("Generated %d pages in %s\n", n, guideOutput)
		return nil
	},
}

func init() {
	guideCmd.Flags().StringVarP(&guideOutput, "output", "o", "weldy-guide", "output directory")
	guideCmd.Flags().StringVar(&guideTitle, "title", "Weldy", "site title")
	guideCmd.Flags().BoolVar(&guideMarkdown, "markdown", false, "also write markdown sources")
	rootCmd.AddCommand(guideCmd)
}
