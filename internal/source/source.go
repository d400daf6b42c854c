// Package source reads raw assignment files into lines.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Extension is the only accepted file extension.
	Extension = ".txt"

	maxLineBytes = 1024 * 1024
)

var ErrWrongExtension = errors.New(`the uploaded file is in a wrong format, please upload a ".txt" file`)

// CheckExtension returns ErrWrongExtension unless name ends with .txt.
func CheckExtension(name string) error {
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		return fmt.Errorf("%w: %s", ErrWrongExtension, filepath.Base(name))
	}
	return nil
}

// ReadLines splits r into lines on \r\n, \r or \n.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanAnyNewline)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// ReadFile checks the extension of path and reads its lines.
func ReadFile(path string) ([]string, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// scanAnyNewline is a bufio.SplitFunc that treats "\r\n", "\r" and "\n"
// as line terminators.
func scanAnyNewline(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// lone \r at the end of the buffer may be the first half of \r\n
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
