package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх stdin/stdout
type Stdio struct {
	out io.Writer
	in  *os.File
}

// NewStdio создает IO поверх os.Stdin и os.Stdout
func NewStdio() *Stdio {
	return NewStdioWith(os.Stdin, os.Stdout)
}

// NewStdioWith создает IO с заданными потоками
func NewStdioWith(in *os.File, out io.Writer) *Stdio {
	return &Stdio{in: in, out: out}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadSecret читает строку без отображения на экране.
// Если stdin не терминал (pipe, файл), читается первая строка.
func (s *Stdio) ReadSecret(prompt string) (string, error) {
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(s.in).ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	s.Printf("%s", prompt)
	secret, err := term.ReadPassword(fd)
	s.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
