// Package prompt asks yes/no questions on a terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks label on out and reads the answer from in. Anything other
// than a yes answer, including an aborted prompt, is false.
func Confirm(in io.Reader, out io.Writer, label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
		Validate: func(s string) error {
			_, err := ParseYesNo(s)
			return err
		},
	}
	answer, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer)
}

// ParseYesNo accepts y/yes/true and n/no/false in any case. Empty is no.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "1":
		return true, nil
	case "", "n", "no", "f", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer %q is not yes or no", s)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
