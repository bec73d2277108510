package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weldyapp/weldy/internal/config"
	"github.com/weldyapp/weldy/internal/knowledge"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize weldy configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose your navigation mode, default machine settings and adjustment steps, and generates a .weldy.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := knowledge.Load(cfg.KnowledgeBase)
		if err != nil {
			return fmt.Errorf("loading knowledge base: %w", err)
		}
		_, err = config.RunWizard(cfgFile, kb.ThicknessPresets)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
