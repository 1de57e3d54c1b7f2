package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rickhohler/cider-tool/internal/ports"
)

// FieldPrompter implements ports.FieldPrompter over a line-oriented reader.
type FieldPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewFieldPrompter constructs a prompter reading answers from in.
func NewFieldPrompter(in io.Reader, out io.Writer) *FieldPrompter {
	return &FieldPrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints "Label [current]: " and returns the trimmed answer.
// End of input counts as a blank answer.
func (p *FieldPrompter) Ask(label, current string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.out)
	}
	return strings.TrimSpace(line), nil
}

var _ ports.FieldPrompter = (*FieldPrompter)(nil)
