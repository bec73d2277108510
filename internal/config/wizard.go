package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it. presets feed the default-thickness choice.
func RunWizard(path string, presets []knowledge.ThicknessPreset) (*Config, error) {
	fmt.Println("Welcome to weldy! Let's set up your troubleshooting defaults.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Navigation mode.
	modePrompt := promptui.Select{
		Label: "How should the wizard guide you",
		Items: []string{
			"catalog - pick the defects you see, then the cause",
			"tree    - answer a short series of questions",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Mode = []Mode{ModeCatalog, ModeTree}[modeIdx]

	// 2. Default thickness; voltage and wire speed follow the preset.
	if len(presets) > 0 {
		items := make([]string, len(presets))
		for i, p := range presets {
			items[i] = fmt.Sprintf("%s\" (%gV, %g IPM)", p.Thickness, p.Voltage, p.WireSpeed)
		}
		thicknessPrompt := promptui.Select{
			Label: "Metal thickness you weld most",
			Items: items,
		}
		idx, _, err := thicknessPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("thickness selection: %w", err)
		}
		p := presets[idx]
		cfg.Defaults = DefaultsConfig{Thickness: p.Thickness, Voltage: p.Voltage, WireSpeed: p.WireSpeed}
	}

	// 3. Wire speed step.
	stepPrompt := promptui.Select{
		Label: "Wire speed change per suggestion",
		Items: []string{"20 IPM", "25 IPM"},
	}
	stepIdx, _, err := stepPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("wire step selection: %w", err)
	}
	cfg.Recommendation.WireSpeedStep = []float64{20, 25}[stepIdx]

	// 4. Accept target.
	acceptPrompt := promptui.Select{
		Label: "After a fix, go back to",
		Items: []string{"defect selection", "machine settings"},
	}
	acceptIdx, _, err := acceptPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("accept target selection: %w", err)
	}
	cfg.Navigation.AcceptTarget = []string{engine.AcceptDefectSelection, engine.AcceptSetup}[acceptIdx]

	// 5. Restart behaviour.
	restartPrompt := promptui.Select{
		Label: "Start Over should",
		Items: []string{"clear my settings", "keep my settings"},
	}
	restartIdx, _, err := restartPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("restart mode selection: %w", err)
	}
	cfg.Navigation.RestartMode = []string{engine.RestartReset, engine.RestartPreserve}[restartIdx]

	// 6. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// validatePort accepts integers in 1-65535.
func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
