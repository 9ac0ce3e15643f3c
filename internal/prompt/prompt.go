// Package prompt implements the interactive prompts the add commands use to
// collect field values from the operator.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompter collects operator input. Implementations re-prompt on input that
// does not satisfy a constrained choice set.
type Prompter interface {
	// Ask prints the label and reads one line. Empty input takes the
	// default; when choices are given, anything outside the set re-prompts.
	Ask(label, def string, choices ...string) (string, error)
	// Confirm asks a yes/no question. Empty input takes the default.
	Confirm(label string, def bool) (bool, error)
}

type terminalPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

var _ Prompter = (*terminalPrompter)(nil)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// New creates a Prompter reading from in and writing to out. Styling is
// enabled only when styled is set, so piped input/output stays plain.
func New(in io.Reader, out io.Writer, styled bool) Prompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out, styled: styled}
}

func (p *terminalPrompter) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *terminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask implements Prompter.
func (p *terminalPrompter) Ask(label, def string, choices ...string) (string, error) {
	hint := ""
	if len(choices) > 0 {
		hint = " (" + strings.Join(choices, "/") + ")"
	}
	if def != "" {
		hint += " [" + def + "]"
	}
	for {
		fmt.Fprintf(p.out, "%s%s: ", p.render(labelStyle, label), p.render(hintStyle, hint))
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		if len(choices) == 0 || contains(choices, line) {
			return line, nil
		}
		fmt.Fprintf(p.out, "Please select one of: %s\n", strings.Join(choices, ", "))
	}
}

// Confirm implements Prompter.
func (p *terminalPrompter) Confirm(label string, def bool) (bool, error) {
	hint := " [y/N]"
	if def {
		hint = " [Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s%s: ", p.render(labelStyle, label), p.render(hintStyle, hint))
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n")
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
