package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var errPromptUnavailable = errors.New("stdin unavailable")

// readPasswordNoEcho reads one line from the terminal with echo switched off.
// The terminal mode is restored before returning.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errPromptUnavailable
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
