package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads one trimmed line. If EOF
// occurs after some input was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault is GetSimpleText showing current in brackets; an empty
// answer returns current.
func GetTextWithDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// GetPassword reads a password. On a terminal fd the input is not echoed;
// otherwise a plain line is read from reader.
func GetPassword(reader *bufio.Reader, w io.Writer, fd int, terminal bool) (string, error) {
	if !terminal {
		return GetSimpleText(reader, "Password", w)
	}
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
