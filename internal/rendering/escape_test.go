package rendering

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry", EscapeXML("Tom & Jerry"))
	assert.Equal(t, "&lt;svg&gt;", EscapeXML("<svg>"))
	assert.Equal(t, "&quot;air&quot; &#39;quotes&#39;", EscapeXML(`"air" 'quotes'`))
	assert.Equal(t, "", EscapeXML(""))
	assert.Equal(t, "plain text", EscapeXML("plain text"))
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, "—", SafeValue(nil, "%"))
	assert.Equal(t, "85%", SafeValue(85.0, "%"))
	assert.Equal(t, "85.5", SafeValue(85.5, ""))
	assert.Equal(t, "hello", SafeValue("hello", ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly ten", Truncate("exactly ten", 11))
	assert.Equal(t, "too lo...", Truncate("too long here", 6))
	// rune-safe: multi-byte characters count as one
	assert.Equal(t, "日本語...", Truncate("日本語のテキスト", 3))
}

func TestWrapText(t *testing.T) {
	lines := WrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 15)
	}
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", strings.Join(lines, " "))
}

func TestWrapText_LongWordKeptIntact(t *testing.T) {
	lines := WrapText("a pneumonoultramicroscopic word", 10)
	assert.Contains(t, lines, "pneumonoultramicroscopic")
}

func TestWrapText_Empty(t *testing.T) {
	assert.Empty(t, WrapText("", 10))
}

// Quotes often carry curly quotes and accented characters; line width counts
// characters, not bytes, so they must not force an early wrap.
func TestWrapText_CountsRunesNotBytes(t *testing.T) {
	lines := WrapText("“Être libre” means freedom", 13)
	require.Len(t, lines, 2)
	assert.Equal(t, "“Être libre”", lines[0])
	assert.Equal(t, "means freedom", lines[1])
	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 13)
	}
}
