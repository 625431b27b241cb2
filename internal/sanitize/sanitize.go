// Package sanitize cleans generated SVG documents for safe embedding in a
// GitHub README. Scripts, foreign objects, and event handler attributes are
// stripped, comments are dropped, and the root element is normalized.
package sanitize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

var forbiddenElements = map[string]bool{
	"script":        true,
	"foreignObject": true,
}

var forbiddenAttributes = map[string]bool{
	"onload":      true,
	"onclick":     true,
	"onerror":     true,
	"onmouseover": true,
	"onmouseout":  true,
	"onfocus":     true,
	"onblur":      true,
}

var dimensionUnits = regexp.MustCompile(`(px|pt|em|rem|%)`)

// linterArtifacts matches stray linter annotations that generators sometimes
// leak into attribute positions, where they would break XML parsing.
var linterArtifacts = regexp.MustCompile(`\s+#\s*(?:noqa|type:|pylint:|pyright:)[^\n/>]*`)

// Error reports an SVG document that could not be sanitized.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to sanitize SVG %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to sanitize SVG %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Sanitizer removes unsafe content from SVG documents. In strict mode a
// document missing all dimension attributes is an error instead of a warning.
type Sanitizer struct {
	Strict bool
	log    *zap.Logger
}

// New builds a Sanitizer. A nil logger disables logging.
func New(strict bool, log *zap.Logger) *Sanitizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sanitizer{Strict: strict, log: log.Named("sanitize")}
}

// Content sanitizes an SVG document in memory, returning the cleaned markup
// and the list of changes made.
func (s *Sanitizer) Content(content string) (string, []string, error) {
	var warnings []string
	if cleaned := linterArtifacts.ReplaceAllString(content, ""); cleaned != content {
		warnings = append(warnings, "removed linter annotation artifacts")
		content = cleaned
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return "", nil, &Error{Message: "invalid XML", Cause: err}
	}

	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		if root != nil {
			if svg := root.FindElement(".//svg"); svg != nil {
				root = svg
			} else {
				return "", nil, &Error{Message: "no svg root element found"}
			}
		} else {
			return "", nil, &Error{Message: "no svg root element found"}
		}
	}

	removeComments(&doc.Element, &warnings)
	sanitizeElement(root, &warnings)

	if err := s.normalizeRoot(root, &warnings); err != nil {
		return "", warnings, err
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", warnings, &Error{Message: "cannot serialize document", Cause: err}
	}
	out = strings.TrimSpace(out)

	for _, w := range warnings {
		s.log.Warn("sanitized SVG content", zap.String("change", w))
	}
	return out, warnings, nil
}

// File sanitizes the SVG at path, writing the result to outputPath. An empty
// outputPath overwrites the input.
func (s *Sanitizer) File(path, outputPath string) ([]string, error) {
	if outputPath == "" {
		outputPath = path
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "cannot read file", Cause: err}
	}

	cleaned, warnings, err := s.Content(string(raw))
	if err != nil {
		if serr, ok := err.(*Error); ok {
			serr.Path = path
		}
		return warnings, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return warnings, &Error{Path: outputPath, Message: "cannot create output directory", Cause: err}
	}
	if err := os.WriteFile(outputPath, []byte(cleaned), 0o644); err != nil {
		return warnings, &Error{Path: outputPath, Message: "cannot write file", Cause: err}
	}
	return warnings, nil
}

// Directory sanitizes every .svg file under dir, returning warnings keyed by
// path. Files that fail to sanitize are reported and skipped.
func (s *Sanitizer) Directory(dir string) (map[string][]string, error) {
	results := make(map[string][]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".svg" {
			return nil
		}
		warnings, err := s.File(path, "")
		if err != nil {
			s.log.Warn("skipping SVG that failed to sanitize",
				zap.String("path", path), zap.Error(err))
			results[path] = append(warnings, err.Error())
			return nil
		}
		results[path] = warnings
		return nil
	})
	if err != nil {
		return nil, &Error{Path: dir, Message: "cannot walk directory", Cause: err}
	}
	return results, nil
}

func removeComments(el *etree.Element, warnings *[]string) {
	for _, tok := range append([]etree.Token(nil), el.Child...) {
		switch t := tok.(type) {
		case *etree.Comment:
			el.RemoveChild(t)
		case *etree.Element:
			removeComments(t, warnings)
		}
	}
}

func sanitizeElement(el *etree.Element, warnings *[]string) {
	for _, child := range append([]*etree.Element(nil), el.ChildElements()...) {
		if forbiddenElements[child.Tag] {
			el.RemoveChild(child)
			*warnings = append(*warnings, "removed forbidden element: "+child.Tag)
			continue
		}
		sanitizeElement(child, warnings)
	}

	for _, attr := range append([]etree.Attr(nil), el.Attr...) {
		if forbiddenAttributes[attr.Key] {
			el.RemoveAttr(attr.Key)
			*warnings = append(*warnings, "removed forbidden attribute: "+attr.Key)
		}
	}
}

// normalizeRoot guarantees the root carries an xmlns and, where possible, a
// viewBox synthesized from width and height.
func (s *Sanitizer) normalizeRoot(root *etree.Element, warnings *[]string) error {
	if root.SelectAttr("xmlns") == nil {
		root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
		*warnings = append(*warnings, "added missing xmlns attribute")
	}

	width := root.SelectAttr("width")
	height := root.SelectAttr("height")
	viewBox := root.SelectAttr("viewBox")

	if viewBox == nil && width != nil && height != nil {
		w, werr := parseDimension(width.Value)
		h, herr := parseDimension(height.Value)
		if werr == nil && herr == nil {
			value := fmt.Sprintf("0 0 %s %s", formatDimension(w), formatDimension(h))
			root.CreateAttr("viewBox", value)
			*warnings = append(*warnings, "added viewBox from width/height: "+value)
		}
	}

	if width == nil && height == nil && viewBox == nil {
		msg := "SVG is missing width, height, and viewBox attributes"
		*warnings = append(*warnings, msg)
		if s.Strict {
			return &Error{Message: msg}
		}
	}
	return nil
}

func parseDimension(value string) (float64, error) {
	value = strings.TrimSpace(dimensionUnits.ReplaceAllString(value, ""))
	return strconv.ParseFloat(value, 64)
}

func formatDimension(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
