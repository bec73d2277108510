package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

var (
	recThickness string
	recVoltage   float64
	recWireSpeed float64
	recOutput    string
)

// recommendation is one suggestion of a cause, rendered for output.
type recommendation struct {
	Question   string               `json:"question,omitempty" yaml:"question,omitempty"`
	Suggestion recommend.Suggestion `json:"suggestion" yaml:"suggestion"`
}

// recommendReport is the machine-readable output of the recommend command.
type recommendReport struct {
	Cause           string            `json:"cause" yaml:"cause"`
	Description     string            `json:"description" yaml:"description"`
	Parameters      params.Parameters `json:"parameters" yaml:"parameters"`
	Recommendations []recommendation  `json:"recommendations" yaml:"recommendations"`
}

var recommendCmd = &cobra.Command{
	Use:   "recommend CAUSE_ID",
	Short: "Print every fix for a cause against your machine settings",
	Long: `Resolves each mistake behind a cause into a concrete instruction for the
given settings. --thickness selects a preset; --voltage and --wire-speed
override it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		a, err := buildApp(c)
		if err != nil {
			return err
		}

		p := c.EngineOptions().Defaults
		if recThickness != "" {
			preset, ok := a.kb.Preset(recThickness)
			if !ok {
				return fmt.Errorf("unknown thickness %q (known: %s)", recThickness, strings.Join(a.kb.ThicknessOptions(), ", "))
			}
			p = p.WithPreset(preset.Thickness, preset.Voltage, preset.WireSpeed)
		}
		if cmd.Flags().Changed("voltage") {
			p.Voltage = recVoltage
		}
		if cmd.Flags().Changed("wire-speed") {
			p.WireSpeed = recWireSpeed
		}

		cause, ok := a.kb.Cause(args[0])
		if !ok {
			return fmt.Errorf("unknown cause %q", args[0])
		}
		report := recommendReport{Cause: cause.Name, Description: cause.Description, Parameters: p}
		for _, mid := range cause.MistakeIDs {
			m, ok := a.kb.Mistake(mid)
			if !ok {
				return fmt.Errorf("cause %q references unknown mistake %q", cause.ID, mid)
			}
			report.Recommendations = append(report.Recommendations, recommendation{
				Question:   m.QuestionToAsk,
				Suggestion: a.resolver.Specific(m.Directive(), p),
			})
		}

		return displayReport(report, recOutput)
	},
}

func displayReport(r recommendReport, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "human", "":
		title := color.New(color.FgCyan, color.Bold)
		counter := color.New(color.FgYellow, color.Bold)

		fmt.Println()
		title.Println(r.Cause)
		fmt.Printf("   %s\n", r.Description)
		fmt.Printf("   %s\n\n", color.HiBlackString(r.Parameters.Summary()))
		for i, rec := range r.Recommendations {
			counter.Printf("   %d. ", i+1)
			fmt.Println(color.GreenString(rec.Suggestion.Text))
			if rec.Question != "" {
				fmt.Printf("      %s\n", rec.Question)
			}
			if rec.Suggestion.Details != "" {
				fmt.Printf("      %s\n", rec.Suggestion.Details)
			}
		}
		fmt.Println()
		fmt.Println(color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
	default:
		return fmt.Errorf("unknown output format %q: must be one of human, json, yaml", format)
	}
	return nil
}

func init() {
	recommendCmd.Flags().StringVarP(&recThickness, "thickness", "t", "", "metal thickness preset, e.g. 3/16")
	recommendCmd.Flags().Float64Var(&recVoltage, "voltage", 0, "current voltage")
	recommendCmd.Flags().Float64Var(&recWireSpeed, "wire-speed", 0, "current wire feed speed in IPM")
	recommendCmd.Flags().StringVarP(&recOutput, "output", "o", "human", "output format: human, json, yaml")
	rootCmd.AddCommand(recommendCmd)
}
