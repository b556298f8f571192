package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headingColor = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgYellow)
)

// prompter reads answers and passwords from the command's input. Passwords
// are read without echo when the input is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 when input is not a terminal
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.ErrOrStderr(),
		fd:  -1,
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Line prints label and returns the next input line without its newline.
func (p *prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prints label and reads a secret.
func (p *prompter) Password(label string) (string, error) {
	if p.fd < 0 {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
