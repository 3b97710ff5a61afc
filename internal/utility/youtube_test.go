package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "watch URL", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch URL không www", url: "https://youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "mobile URL", url: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link kèm query", url: "https://youtu.be/dQw4w9WgXcQ?t=42", want: "dQw4w9WgXcQ"},
		{name: "shorts", url: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed", url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch kèm playlist", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx", want: "dQw4w9WgXcQ"},
		{name: "URL có khoảng trắng thừa", url: "  https://youtu.be/dQw4w9WgXcQ  ", want: "dQw4w9WgXcQ"},
		{name: "host khác", url: "https://vimeo.com/123456", wantErr: true},
		{name: "thiếu video id", url: "https://www.youtube.com/watch", wantErr: true},
		{name: "id quá ngắn", url: "https://youtu.be/abc", wantErr: true},
		{name: "id chứa ký tự lạ", url: "https://www.youtube.com/watch?v=dQw4w9WgXc!", wantErr: true},
		{name: "chuỗi rỗng", url: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractYouTubeID(tc.url)
			if tc.wantErr {
				require.Error(t, err, "mong đợi lỗi cho URL %q", tc.url)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestYouTubeWatchURL(t *testing.T) {
	got := YouTubeWatchURL("dQw4w9WgXcQ")
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got != want {
		t.Errorf("YouTubeWatchURL = %q, muốn %q", got, want)
	}
}

func TestYouTubeThumbnailURL(t *testing.T) {
	got := YouTubeThumbnailURL("dQw4w9WgXcQ")
	want := "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if got != want {
		t.Errorf("YouTubeThumbnailURL = %q, muốn %q", got, want)
	}
}
