package wizard

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrQuit is returned by a Prompter when the user abandons the session.
var ErrQuit = errors.New("quit")

// Prompter asks the user to pick an item or type a value.
type Prompter interface {
	Select(label string, items []string) (int, error)
	Prompt(label, def string, validate func(string) error) (string, error)
}

// PromptUI is a terminal Prompter backed by promptui.
type PromptUI struct{}

func (PromptUI) Select(label string, items []string) (int, error) {
	p := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}
	idx, _, err := p.Run()
	return idx, mapPromptErr(err)
}

func (PromptUI) Prompt(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
	}
	v, err := p.Run()
	return v, mapPromptErr(err)
}

func mapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrQuit
	}
	return err
}
