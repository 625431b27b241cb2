package sanitize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_RemovesScriptElements(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100"><script>alert(1)</script><rect width="10" height="10"/></svg>`
	out, warnings, err := s.Content(svg)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "<rect")
	assert.Contains(t, warnings, "removed forbidden element: script")
}

func TestContent_RemovesForeignObject(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><g><foreignObject><div>html</div></foreignObject></g></svg>`
	out, warnings, err := s.Content(svg)
	require.NoError(t, err)

	assert.NotContains(t, out, "foreignObject")
	assert.Contains(t, warnings, "removed forbidden element: foreignObject")
}

func TestContent_RemovesEventHandlerAttributes(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" onload="evil()"><rect onclick="evil()" onmouseover="evil()" width="5" height="5"/></svg>`
	out, warnings, err := s.Content(svg)
	require.NoError(t, err)

	assert.NotContains(t, out, "onload")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "onmouseover")
	assert.Contains(t, out, `width="5"`)
	assert.Contains(t, warnings, "removed forbidden attribute: onload")
}

func TestContent_StripsLinterArtifacts(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100"><text x="5" y="10"  # noqa: E501>hi</text></svg>`
	out, warnings, err := s.Content(svg)
	require.NoError(t, err)

	assert.NotContains(t, out, "noqa")
	assert.Contains(t, out, ">hi</text>")
	assert.Contains(t, warnings, "removed linter annotation artifacts")
}

func TestContent_StripsComments(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><!-- Background --><rect width="5" height="5"/></svg>`
	out, _, err := s.Content(svg)
	require.NoError(t, err)

	assert.NotContains(t, out, "<!--")
	assert.Contains(t, out, "<rect")
}

func TestContent_SynthesizesViewBox(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="800px" height="200px"><rect width="5" height="5"/></svg>`
	out, warnings, err := s.Content(svg)
	require.NoError(t, err)

	assert.Contains(t, out, `viewBox="0 0 800 200"`)
	assert.Contains(t, warnings, "added viewBox from width/height: 0 0 800 200")
}

func TestContent_AddsMissingNamespace(t *testing.T) {
	s := New(false, nil)

	out, warnings, err := s.Content(`<svg viewBox="0 0 10 10"><rect width="5" height="5"/></svg>`)
	require.NoError(t, err)

	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, warnings, "added missing xmlns attribute")
}

func TestContent_MissingDimensions(t *testing.T) {
	lenient := New(false, nil)
	_, warnings, err := lenient.Content(`<svg xmlns="http://www.w3.org/2000/svg"><rect width="5" height="5"/></svg>`)
	require.NoError(t, err)
	assert.Contains(t, warnings, "SVG is missing width, height, and viewBox attributes")

	strict := New(true, nil)
	_, _, err = strict.Content(`<svg xmlns="http://www.w3.org/2000/svg"><rect width="5" height="5"/></svg>`)
	assert.Error(t, err)
}

func TestContent_InvalidXML(t *testing.T) {
	s := New(false, nil)

	_, _, err := s.Content("<svg><unclosed")
	require.Error(t, err)
	var serr *Error
	assert.ErrorAs(t, err, &serr)
}

func TestContent_Idempotent(t *testing.T) {
	s := New(false, nil)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" onload="x()"><!-- c --><script>x</script><rect width="10" height="10"/></svg>`
	once, _, err := s.Content(svg)
	require.NoError(t, err)
	twice, warnings, err := s.Content(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Empty(t, warnings)
}

func TestFile_OverwritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" onclick="x()"><rect width="5" height="5"/></svg>`
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))

	s := New(false, nil)
	warnings, err := s.File(path, "")
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "onclick")
}

func TestDirectory_WalksAndSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	good := filepath.Join(dir, "nested", "good.svg")
	bad := filepath.Join(dir, "bad.svg")
	require.NoError(t, os.WriteFile(good, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"/>`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("<svg><broken"), 0o644))

	s := New(false, nil)
	results, err := s.Directory(dir)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.NotEmpty(t, results[bad])
}
