package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/params"
)

// Menu items outside the screen's own choices.
const (
	ItemContinue  = "Continue with these settings"
	ItemThickness = "Choose metal thickness"
	ItemVoltage   = "Set voltage"
	ItemWireSpeed = "Set wire speed"
	ItemTried     = "Mark things I've tried"
	ItemDone      = "Done"
	ItemBack      = "Back"
	ItemStartOver = "Start over"
	ItemQuit      = "Quit"
)

// Runner drives an engine session from a terminal.
type Runner struct {
	Engine   *engine.Engine
	Prompter Prompter
	Out      io.Writer
}

// menuEntry is one selectable line. sub, when set, builds the action with a
// follow-up prompt; a nil action from sub returns to the menu.
type menuEntry struct {
	label  string
	action *engine.Action
	quit   bool
	sub    func(engine.Session) (*engine.Action, error)
}

// Run loops until the user quits or ctx is cancelled, returning the final
// session.
func (r *Runner) Run(ctx context.Context, s engine.Session) (engine.Session, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		scr := r.Engine.Screen(s)
		Render(r.Out, scr)

		entries := r.menu(scr)
		labels := make([]string, len(entries))
		for i, e := range entries {
			labels[i] = e.label
		}

		idx, err := r.Prompter.Select("What next", labels)
		if errors.Is(err, ErrQuit) {
			return s, nil
		}
		if err != nil {
			return s, fmt.Errorf("menu: %w", err)
		}
		entry := entries[idx]
		if entry.quit {
			return s, nil
		}

		action := entry.action
		if entry.sub != nil {
			action, err = entry.sub(s)
			if errors.Is(err, ErrQuit) {
				return s, nil
			}
			if err != nil {
				return s, err
			}
			if action == nil {
				continue
			}
		}

		next, err := r.Engine.Dispatch(s, *action)
		if err != nil {
			fmt.Fprintln(r.Out, color.RedString("  %v", err))
			continue
		}
		s = next
	}
}

func act(a engine.Action) *engine.Action { return &a }

func (r *Runner) menu(scr engine.Screen) []menuEntry {
	var entries []menuEntry

	switch {
	case scr.Kind == engine.ScreenSetup:
		entries = append(entries,
			menuEntry{label: ItemContinue, action: act(engine.Action{Type: engine.ActionSetup})},
			menuEntry{label: ItemThickness, sub: r.chooseThickness},
			menuEntry{label: ItemVoltage, sub: r.enterNumber(ItemVoltage, params.KeyVoltage)},
			menuEntry{label: ItemWireSpeed, sub: r.enterNumber(ItemWireSpeed, params.KeyWireSpeed)},
			menuEntry{label: ItemTried, sub: r.toggleTried},
		)
	case scr.Recommendation != nil:
		rv := scr.Recommendation
		entries = append(entries,
			menuEntry{label: rv.AcceptLabel, action: act(engine.Action{Type: engine.ActionAccept})},
			menuEntry{label: rv.NextLabel, action: act(engine.Action{Type: engine.ActionTryAnother})},
		)
	default:
		for _, c := range scr.Choices {
			entries = append(entries, menuEntry{
				label:  c.Label,
				action: act(engine.Action{Type: engine.ActionChoose, ChoiceID: c.ID}),
			})
		}
	}

	if scr.CanGoBack {
		entries = append(entries, menuEntry{label: ItemBack, action: act(engine.Action{Type: engine.ActionBack})})
	}
	if scr.Kind != engine.ScreenSetup {
		entries = append(entries, menuEntry{label: ItemStartOver, action: act(engine.Action{Type: engine.ActionRestart})})
	}
	return append(entries, menuEntry{label: ItemQuit, quit: true})
}

func (r *Runner) chooseThickness(engine.Session) (*engine.Action, error) {
	options := r.Engine.KnowledgeBase().ThicknessOptions()
	items := make([]string, len(options))
	for i, o := range options {
		items[i] = o + `"`
	}
	idx, err := r.Prompter.Select(ItemThickness, items)
	if err != nil {
		return nil, err
	}
	return act(engine.Action{Type: engine.ActionSelectThickness, Thickness: options[idx]}), nil
}

func (r *Runner) enterNumber(label, key string) func(engine.Session) (*engine.Action, error) {
	return func(s engine.Session) (*engine.Action, error) {
		p := r.Engine.Screen(s).Parameters
		def := params.FormatNumber(p.Voltage)
		if key == params.KeyWireSpeed {
			def = params.FormatNumber(p.WireSpeed)
		}
		v, err := r.Prompter.Prompt(label, def, validateNumber)
		if err != nil {
			return nil, err
		}
		return act(engine.Action{Type: engine.ActionSetParameter, Key: key, Value: v}), nil
	}
}

func validateNumber(s string) error {
	if _, ok := params.ParseNumber(s); !ok {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// toggleTried offers the checklist once; picking an entry flips it.
func (r *Runner) toggleTried(s engine.Session) (*engine.Action, error) {
	tried := r.Engine.Screen(s).Parameters.Tried
	things := r.Engine.KnowledgeBase().ThingsTried
	items := make([]string, 0, len(things)+1)
	items = append(items, ItemDone)
	for _, t := range things {
		mark := "[ ]"
		if tried[t.ID] {
			mark = "[x]"
		}
		items = append(items, mark+" "+t.Name)
	}
	idx, err := r.Prompter.Select(ItemTried, items)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, nil
	}
	return act(engine.Action{Type: engine.ActionToggleTried, ID: things[idx-1].ID}), nil
}
