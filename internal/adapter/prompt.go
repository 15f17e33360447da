package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptAPIKey asks for the catalog API key. Input is hidden when
// stdin is a terminal, otherwise one line is read (for piping).
func PromptAPIKey(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "TMDB API key: ")

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		keyBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(out) // Add newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read api key: %w", err)
		}
		return strings.TrimSpace(string(keyBytes)), nil
	}

	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("failed to read api key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
