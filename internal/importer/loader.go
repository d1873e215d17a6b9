package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// HeaderMarker is the first column name of the CSV block inside a bank export.
const HeaderMarker = "Transaction Date"

// ErrMarkerNotFound is returned when an export contains no CSV header.
var ErrMarkerNotFound = errors.New("csv header marker not found")

// Load reads a bank export from disk and returns its CSV block.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		data = []byte(strings.ToValidUTF8(string(data), string(utf8.RuneError)))
	}
	return ExtractCSV(string(data))
}

// ExtractCSV drops everything before HeaderMarker along with the final
// character of the export, which banks append as a stray terminator.
func ExtractCSV(text string) (string, error) {
	start := strings.Index(text, HeaderMarker)
	if start < 0 {
		return "", fmt.Errorf("looking for %q: %w", HeaderMarker, ErrMarkerNotFound)
	}
	body := text[start:]
	_, size := utf8.DecodeLastRuneInString(body)
	return body[:len(body)-size], nil
}
