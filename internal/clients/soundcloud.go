package clients

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var soundcloudOEmbedURL = "https://soundcloud.com/oembed"

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SoundCloudClient resolves public track metadata without an API key, using
// the oEmbed endpoint plus Open Graph tags scraped from the track page.
type SoundCloudClient struct {
	client *Client
}

func NewSoundCloudClient(client *Client) *SoundCloudClient {
	return &SoundCloudClient{client: client}
}

// FetchTrack assembles the soundcloud track document for a public track URL.
func (s *SoundCloudClient) FetchTrack(ctx context.Context, trackURL string) (map[string]any, error) {
	if trackURL == "" {
		return nil, &FetchError{Source: "soundcloud", Message: "missing track URL"}
	}

	var oembed oembedResponse
	url := fmt.Sprintf("%s?format=json&url=%s", soundcloudOEmbedURL, trackURL)
	if err := s.client.getJSON(ctx, "soundcloud", url, nil, &oembed); err != nil {
		return nil, err
	}

	title := oembed.Title
	artist := oembed.AuthorName
	// oEmbed titles come back as "Track by Artist".
	if idx := strings.LastIndex(title, " by "); idx > 0 && artist != "" && strings.HasSuffix(title, " by "+artist) {
		title = title[:idx]
	}

	doc := map[string]any{
		"title":         title,
		"artist":        artist,
		"permalink_url": trackURL,
		"updated_at":    nowISO(),
	}

	meta, err := s.scrapePage(ctx, trackURL)
	if err != nil {
		s.client.log.Warn("soundcloud page scrape failed, keeping oEmbed fields only",
			zap.String("url", trackURL), zap.Error(err))
	} else {
		for k, v := range meta {
			doc[k] = v
		}
	}

	if oembed.ThumbnailURL != "" {
		if dataURI, err := s.fetchArtwork(ctx, oembed.ThumbnailURL); err != nil {
			s.client.log.Warn("soundcloud artwork fetch failed", zap.Error(err))
		} else {
			doc["artwork_data_uri"] = dataURI
		}
	}

	return doc, nil
}

// scrapePage reads the Open Graph and twitter meta tags from the public track
// page. SoundCloud exposes duration and genre there but not in oEmbed.
func (s *SoundCloudClient) scrapePage(ctx context.Context, trackURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, &FetchError{Source: "soundcloud", Message: "building page request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.http.Do(req)
	if err != nil {
		return nil, &FetchError{Source: "soundcloud", Message: "requesting track page", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: "soundcloud", Message: fmt.Sprintf("track page returned status %d", resp.StatusCode)}
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: "soundcloud", Message: "parsing track page", Cause: err}
	}

	metaContent := func(property string) string {
		content, _ := page.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
		if content == "" {
			content, _ = page.Find(fmt.Sprintf(`meta[name=%q]`, property)).Attr("content")
		}
		return content
	}

	meta := map[string]any{}
	if genre := metaContent("og:genre"); genre != "" {
		meta["genre"] = genre
	}
	// ISO 8601 duration, e.g. PT03M45S.
	if duration := metaContent("music:duration"); duration != "" {
		if ms, ok := parseISODurationMS(duration); ok {
			meta["duration_ms"] = ms
		}
	}
	if plays := metaContent("soundcloud:play_count"); plays != "" {
		var n float64
		if _, err := fmt.Sscanf(plays, "%f", &n); err == nil {
			meta["playback_count"] = n
		}
	}
	if created := metaContent("music:release_date"); created != "" {
		meta["created_at"] = created
	}
	return meta, nil
}

// parseISODurationMS handles the PT..H..M..S subset SoundCloud emits.
func parseISODurationMS(value string) (float64, bool) {
	value = strings.TrimPrefix(strings.ToUpper(value), "PT")
	var total float64
	for _, unit := range []struct {
		suffix  string
		seconds float64
	}{{"H", 3600}, {"M", 60}, {"S", 1}} {
		idx := strings.Index(value, unit.suffix)
		if idx < 0 {
			continue
		}
		var n float64
		if _, err := fmt.Sscanf(value[:idx], "%f", &n); err != nil {
			return 0, false
		}
		total += n * unit.seconds
		value = value[idx+1:]
	}
	if total == 0 {
		return 0, false
	}
	return total * 1000, true
}

// fetchArtwork downloads the thumbnail and inlines it as a data URI so the
// rendered card has no external references.
func (s *SoundCloudClient) fetchArtwork(ctx context.Context, artworkURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artworkURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("artwork returned status %d", resp.StatusCode)
	}

	// Artwork thumbnails are small, but cap the read anyway.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body)), nil
}
