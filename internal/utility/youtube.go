package utility

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// youtubeIDRegex kiểm tra video ID hợp lệ (11 ký tự base64url)
var youtubeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractYouTubeID trích xuất video ID từ các dạng URL YouTube được hỗ trợ:
//   - https://www.youtube.com/watch?v=<id>
//   - https://youtu.be/<id>
//   - https://www.youtube.com/shorts/<id>
//   - https://www.youtube.com/embed/<id>
func ExtractYouTubeID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("không parse được URL: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtube.com":
		path := strings.Trim(u.Path, "/")
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		}
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	default:
		return "", fmt.Errorf("host không phải YouTube: %s", host)
	}

	// Cắt bỏ phần path/query thừa sau ID
	if idx := strings.IndexAny(id, "/?&"); idx >= 0 {
		id = id[:idx]
	}

	if !youtubeIDRegex.MatchString(id) {
		return "", fmt.Errorf("video ID không hợp lệ: %q", id)
	}
	return id, nil
}

// YouTubeThumbnailURL trả về URL thumbnail mặc định cho video ID
func YouTubeThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

// YouTubeWatchURL trả về URL chuẩn dạng watch cho video ID
func YouTubeWatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
