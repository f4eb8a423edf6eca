package console

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// prompter reads values interactively, one per line.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{bufio.NewScanner(in), out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no input for %s", label)
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// parseInt parses a decimal integer, or a hexadecimal one with 0x prefix.
func parseInt(label, s string) (*big.Int, error) {
	digits, base := s, 10
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return nil, fmt.Errorf("invalid integer for %s: %q", label, s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}
