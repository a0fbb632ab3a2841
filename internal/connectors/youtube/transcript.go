package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/logger"
)

// Ensure TranscriptProvider implements the interface.
var _ driven.TranscriptProvider = (*TranscriptProvider)(nil)

// DefaultBinary is the transcript extraction binary looked up on PATH.
const DefaultBinary = "yt-dlp"

// TranscriptProvider extracts transcripts by shelling out to yt-dlp.
// YouTube serves auto-generated captions for most political content,
// so both uploaded and auto subtitles are requested.
type TranscriptProvider struct {
	binary string
}

// NewTranscriptProvider creates a transcript provider. An empty binary
// uses DefaultBinary from PATH.
func NewTranscriptProvider(binary string) *TranscriptProvider {
	if binary == "" {
		binary = DefaultBinary
	}
	return &TranscriptProvider{binary: binary}
}

// Transcript downloads the subtitle track for the given watch URL and
// flattens it to plain text.
func (p *TranscriptProvider) Transcript(ctx context.Context, url, lang string) (string, error) {
	videoID, err := VideoID(url)
	if err != nil {
		return "", err
	}
	if lang == "" {
		lang = "en"
	}

	tmpDir, err := os.MkdirTemp("", "policyscan-subs-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outTemplate := filepath.Join(tmpDir, "%(id)s")
	cmd := exec.CommandContext(ctx, p.binary,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", lang,
		"--sub-format", "json3",
		"--output", outTemplate,
		WatchURL(videoID),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("yt-dlp: %w: %s", err, strings.TrimSpace(string(output)))
	}

	// yt-dlp names the file <id>.<lang>.json3, with possible region
	// variants like en-orig.
	matches, err := filepath.Glob(filepath.Join(tmpDir, videoID+".*.json3"))
	if err != nil {
		return "", fmt.Errorf("glob subtitles: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("youtube: no %s transcript for %s: %w", lang, videoID, domain.ErrNotFound)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("read subtitles: %w", err)
	}

	text, err := parseJSON3(data)
	if err != nil {
		return "", fmt.Errorf("parse subtitles for %s: %w", videoID, err)
	}
	if text == "" {
		return "", fmt.Errorf("youtube: empty transcript for %s: %w", videoID, domain.ErrNotFound)
	}

	logger.Debug("Transcript for %s: %d chars", videoID, len(text))
	return text, nil
}

// json3Doc is the shape of YouTube's json3 subtitle format.
type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// parseJSON3 flattens a json3 subtitle document into plain text with
// normalised whitespace.
func parseJSON3(data []byte) (string, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, event := range doc.Events {
		for _, seg := range event.Segs {
			b.WriteString(seg.UTF8)
		}
	}

	return strings.Join(strings.Fields(b.String()), " "), nil
}
