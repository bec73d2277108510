package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/weldyapp/weldy/internal/wizard"
)

var troubleshootCmd = &cobra.Command{
	Use:     "troubleshoot",
	Aliases: []string{"run"},
	Short:   "Diagnose a weld interactively in the terminal",
	Long: `Starts the troubleshooting wizard: confirm your machine settings, pick what
your weld looks like and the cause that applies, then work through concrete
suggestions until the weld is fixed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		a, err := buildApp(c)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		runner := &wizard.Runner{
			Engine:   a.engine,
			Prompter: wizard.PromptUI{},
			Out:      os.Stdout,
		}
		_, err = runner.Run(ctx, a.engine.NewSession())
		return err
	},
}

func init() {
	rootCmd.AddCommand(troubleshootCmd)
}
