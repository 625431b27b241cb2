// Package readme updates marked sections of a README file in place. Card
// workflows rewrite the content between <!-- NAME:START --> and
// <!-- NAME:END --> comment pairs without touching the rest of the document.
package readme

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// MarkerError reports a marker pair that is missing or malformed.
type MarkerError struct {
	Marker  string
	Message string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("marker %s: %s", e.Marker, e.Message)
}

func startMarker(marker string) string { return fmt.Sprintf("<!-- %s:START -->", marker) }
func endMarker(marker string) string   { return fmt.Sprintf("<!-- %s:END -->", marker) }

// UpdateSection replaces the content between a marker pair, returning the
// updated document. The replacement keeps the markers and puts the new
// content on its own lines between them. The first marker pair wins; marker
// names are expected to be unique within a README.
func UpdateSection(document, marker, content string) (string, error) {
	start, end := startMarker(marker), endMarker(marker)
	if !strings.Contains(document, start) {
		return "", &MarkerError{Marker: marker, Message: "start marker not found"}
	}
	if !strings.Contains(document, end) {
		return "", &MarkerError{Marker: marker, Message: "end marker not found"}
	}

	pattern := regexp.MustCompile(
		`(?s)` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end))
	replacement := start + "\n" + content + "\n" + end
	return pattern.ReplaceAllLiteralString(document, replacement), nil
}

// UpdateFile rewrites one marked section of the README at path.
func UpdateFile(path, marker, content string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read README %s: %w", path, err)
	}

	updated, err := UpdateSection(string(raw), marker, content)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write README %s: %w", path, err)
	}
	return nil
}

// UpdateSections applies several marker updates to the README at path in one
// read/write cycle. Updates apply in map iteration order; each marker is
// independent so order does not matter.
func UpdateSections(path string, sections map[string]string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read README %s: %w", path, err)
	}

	document := string(raw)
	for marker, content := range sections {
		document, err = UpdateSection(document, marker, content)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return fmt.Errorf("failed to write README %s: %w", path, err)
	}
	return nil
}
