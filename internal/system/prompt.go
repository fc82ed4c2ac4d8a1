package system

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TerminalPrompter implements Prompter over a reader/writer pair, normally
// stdin/stdout.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter builds a prompter for interactive sessions.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

var _ Prompter = (*TerminalPrompter)(nil)

// Ask prints the prompt with its default and reads one line. An empty line
// returns the default.
func (p *TerminalPrompter) Ask(prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// NonInteractivePrompter always answers with the default; runs without a
// terminal never block waiting for input.
type NonInteractivePrompter struct{}

var _ Prompter = NonInteractivePrompter{}

// Ask returns the default value unchanged.
func (NonInteractivePrompter) Ask(_ string, defaultValue string) (string, error) {
	return defaultValue, nil
}
