package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// prompter asks the follow-up questions after a run. Questions are only
// asked when input comes from a terminal so scripted runs never block.
type prompter struct {
	in    *bufio.Reader
	out   io.Writer
	isTTY bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:    bufio.NewReader(in),
		out:   out,
		isTTY: isTerminal(in),
	}
}

func (p *prompter) interactive() bool {
	return p.isTTY
}

func (p *prompter) waitForEnter(message string) {
	fmt.Fprint(p.out, message)
	_, _ = p.in.ReadString('\n')
}

func (p *prompter) confirm(question string) bool {
	fmt.Fprint(p.out, question)
	answer, _ := p.in.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
