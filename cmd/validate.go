package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/knowledge"
)

var (
	validateKB   []string
	validateTree string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check knowledge base and decision tree files",
	Long: `Loads the knowledge base (paths or globs, default from config) and the
decision tree, then reports broken references and content warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns := cfg.KnowledgeBase
		if len(validateKB) > 0 {
			patterns = validateKB
		}
		treePath := cfg.DecisionTree
		if cmd.Flags().Changed("tree") {
			treePath = validateTree
		}

		ok := color.New(color.FgGreen, color.Bold)
		bad := color.New(color.FgRed, color.Bold)
		warn := color.New(color.FgYellow)

		failed := false

		kb, err := knowledge.Load(patterns)
		if err != nil {
			return err
		}
		if err := kb.Validate(); err != nil {
			failed = true
			bad.Println("✗ Knowledge base")
			printJoined(err)
		} else {
			ok.Println("✓ Knowledge base")
			fmt.Printf("   %d defects, %d causes, %d mistakes, %d presets, %d checklist entries\n",
				len(kb.Defects), len(kb.Causes), len(kb.Mistakes), len(kb.ThicknessPresets), len(kb.ThingsTried))
		}

		tree, err := decisiontree.Load(treePath)
		if err != nil {
			return err
		}
		if err := tree.Validate(); err != nil {
			failed = true
			bad.Println("✗ Decision tree")
			printJoined(err)
		} else {
			ok.Println("✓ Decision tree")
			fmt.Printf("   %d nodes, %d diagnoses\n", len(tree.Nodes), len(tree.Diagnoses()))
		}
		for _, w := range tree.Lint() {
			warn.Printf("   ! %s\n", w)
		}

		if failed {
			return errors.New("validation failed")
		}
		return nil
	},
}

// printJoined prints one line per error joined with errors.Join.
func printJoined(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("   - %s\n", line)
	}
}

func init() {
	validateCmd.Flags().StringSliceVar(&validateKB, "kb", nil, "knowledge base files or globs (default from config)")
	validateCmd.Flags().StringVar(&validateTree, "tree", "", "decision tree file (default from config, empty for embedded)")
	rootCmd.AddCommand(validateCmd)
}
