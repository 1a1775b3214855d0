package setup

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateUsername enforces the client's username charset: letters, digits
// and underscore, non-empty.
func ValidateUsername(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("must not be empty"),
		validation.Match(usernamePattern).Error("only letters, digits and underscore are allowed"),
	)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidUsername, name, err)
	}
	return nil
}

// PromptUsername reads from in until a conforming username is entered,
// re-prompting on invalid input. Closed input is an error: the caller has
// nothing else to fall back to.
func PromptUsername(in io.Reader, out io.Writer) (string, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter a username (alphanumeric only, no spaces): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrPromptClosed
		}
		name := strings.TrimSpace(scanner.Text())
		if err := ValidateUsername(name); err != nil {
			fmt.Fprintln(out, "✘ Invalid username. Try again.")
			continue
		}
		fmt.Fprintf(out, "✔ Username accepted: %s\n", name)
		return name, nil
	}
}
