package clients

import (
	"context"
	"strings"
)

var quotableRandomURL = "https://api.quotable.io/random"

type quotableResponse struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// quoteProfiles maps keywords found in the quote text or its tags to the
// aesthetic properties the quote card renders with. First match wins.
var quoteProfiles = []struct {
	keywords  []string
	sentiment string
	theme     string
	profile   string
	style     []string
}{
	{[]string{"hope", "dream", "future", "believe"}, "hopeful", "aspiration", "warm", []string{"sunrise", "gentle"}},
	{[]string{"courage", "fear", "strength", "brave"}, "inspiring", "courage", "energetic", []string{"storm", "bold"}},
	{[]string{"nature", "tree", "river", "mountain", "sky"}, "peaceful", "nature", "cool", []string{"forest", "calm"}},
	{[]string{"wisdom", "learn", "know", "truth", "mind"}, "reflective", "wisdom", "grounded", []string{"quiet", "deep"}},
	{[]string{"love", "heart", "kindness", "friend"}, "uplifting", "connection", "warm", []string{"soft", "glow"}},
	{[]string{"star", "universe", "infinite", "cosmos"}, "inspiring", "wonder", "cosmic", []string{"cosmic", "vast"}},
	{[]string{"loss", "sorrow", "grief", "pain"}, "melancholic", "resilience", "cool", []string{"rain", "still"}},
}

// analyzeQuote derives display attributes from the quote text and tags. The
// defaults keep the card renderable for quotes that match nothing.
func analyzeQuote(content string, tags []string) map[string]any {
	haystack := strings.ToLower(content + " " + strings.Join(tags, " "))
	for _, p := range quoteProfiles {
		for _, kw := range p.keywords {
			if strings.Contains(haystack, kw) {
				keywords := make([]any, len(p.style))
				for i, s := range p.style {
					keywords[i] = s
				}
				return map[string]any{
					"sentiment":      p.sentiment,
					"theme":          p.theme,
					"color_profile":  p.profile,
					"style_keywords": keywords,
				}
			}
		}
	}
	return map[string]any{
		"sentiment":      "reflective",
		"theme":          "wisdom",
		"color_profile":  "neutral",
		"style_keywords": []any{},
	}
}

// FetchQuote pulls a random quote and attaches the aesthetic analysis the
// card renderer uses for gradient and keyword selection.
func (c *Client) FetchQuote(ctx context.Context) (map[string]any, error) {
	var quote quotableResponse
	if err := c.getJSON(ctx, "quote", quotableRandomURL, nil, &quote); err != nil {
		return nil, err
	}
	if quote.Content == "" {
		return nil, &FetchError{Source: "quote", Message: "empty quote content"}
	}
	return map[string]any{
		"quote":      quote.Content,
		"author":     quote.Author,
		"tags":       quote.Tags,
		"analysis":   analyzeQuote(quote.Content, quote.Tags),
		"updated_at": nowISO(),
	}, nil
}
