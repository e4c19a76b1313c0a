package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"clipshelf/internal/adapters/crypto"
)

var errNoTerminal = errors.New("no passphrase: set CLIPSHELF_PASSPHRASE or run from a terminal")

// readPassphrase prompts on the controlling terminal without echo.
func readPassphrase(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoTerminal
	}
	fmt.Fprint(prompt, "Passphrase: ")
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(pass), nil
}

// getSealer returns the invocation's sealer, asking for the passphrase on
// first use unless one is configured.
func (a *app) getSealer(prompt io.Writer) (*crypto.Sealer, error) {
	if a.sealer != nil {
		return a.sealer, nil
	}
	pass := a.cfg.Passphrase
	if pass == "" {
		var err error
		if pass, err = a.readPass(prompt); err != nil {
			return nil, err
		}
	}
	s, err := crypto.NewSealer(pass)
	if err != nil {
		return nil, err
	}
	a.sealer = s
	return s, nil
}

// lazyOpener defers the passphrase prompt until sealed content is opened.
type lazyOpener struct {
	a      *app
	prompt io.Writer
}

// Open implements orchestrators.ContentOpener.
func (o lazyOpener) Open(sealed string) (string, error) {
	s, err := o.a.getSealer(o.prompt)
	if err != nil {
		return "", err
	}
	return s.Open(sealed)
}
