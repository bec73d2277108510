package wizard

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/weldyapp/weldy/internal/engine"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	counterColor = color.New(color.FgYellow, color.Bold)
	fixColor     = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Render writes a screen in human form.
func Render(w io.Writer, scr engine.Screen) {
	fmt.Fprintln(w)
	titleColor.Fprintln(w, scr.Title)
	if scr.Subtitle != "" {
		fmt.Fprintf(w, "  %s\n", scr.Subtitle)
	}
	fmt.Fprintf(w, "  %s\n", color.HiBlackString(scr.Summary))

	if scr.Kind == engine.ScreenError {
		errorColor.Fprintf(w, "  %s\n", scr.Error)
		return
	}
	if scr.Description != "" {
		fmt.Fprintln(w)
		for _, line := range strings.Split(scr.Description, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	for _, c := range scr.Choices {
		if len(c.Descriptions) == 0 && c.Description == "" {
			continue
		}
		fmt.Fprintf(w, "\n  %s\n", c.Label)
		if c.Description != "" {
			fmt.Fprintf(w, "    %s\n", c.Description)
		}
		for _, d := range c.Descriptions {
			fmt.Fprintf(w, "    %s\n", d)
		}
	}

	if rv := scr.Recommendation; rv != nil {
		fmt.Fprintln(w)
		counterColor.Fprintf(w, "  %s  ", rv.Counter)
		fmt.Fprintln(w, color.HiBlackString(rv.ParameterBadge))
		if rv.Question != "" {
			fmt.Fprintf(w, "  %s\n", rv.Question)
		}
		fixColor.Fprintf(w, "  %s\n", rv.Suggestion.Text)
		if rv.Suggestion.Details != "" {
			fmt.Fprintf(w, "  %s\n", rv.Suggestion.Details)
		}
	}
}
