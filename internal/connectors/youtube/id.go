// Package youtube fetches video metadata and transcripts for the
// ingest pipeline. Metadata comes from the YouTube Data API; the
// transcript is extracted with the yt-dlp binary.
package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// VideoID extracts the video identifier from the common YouTube URL
// shapes: watch?v=, youtu.be/, shorts/, embed/, and live/. A bare
// 11-character ID passes through unchanged.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("youtube: empty URL")
	}

	// Bare video IDs are 11 URL-safe characters.
	if !strings.ContainsAny(raw, ":/?.") && len(raw) == 11 {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("youtube: parse URL %q: %w", raw, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				if id := strings.Trim(rest, "/"); id != "" {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("youtube: no video ID in %q", raw)
}
