package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFields(t *testing.T) {
	cases := []struct {
		scope string
		want  []string
	}{
		{scope: "transcripts", want: []string{"transcript"}},
		{scope: "notes", want: []string{"notes"}},
		{scope: "all", want: []string{"title", "description", "transcript", "notes"}},
		{scope: "", want: []string{"title", "description", "transcript", "notes"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, scopeFields(tc.scope), "scope %q", tc.scope)
	}
}

func TestBuildSnippetNoMatch(t *testing.T) {
	if _, _, ok := BuildSnippet("video về Go concurrency", "python"); ok {
		t.Error("BuildSnippet phải trả về ok=false khi không khớp")
	}
	if _, _, ok := BuildSnippet("", "go"); ok {
		t.Error("BuildSnippet với text rỗng phải trả về ok=false")
	}
	if _, _, ok := BuildSnippet("text", ""); ok {
		t.Error("BuildSnippet với query rỗng phải trả về ok=false")
	}
}

func TestBuildSnippetCaseInsensitive(t *testing.T) {
	snippet, highlights, ok := BuildSnippet("Learn Goroutines today", "GOROUTINES")
	require.True(t, ok)
	assert.Equal(t, "Learn Goroutines today", snippet)
	require.Len(t, highlights, 1)
	assert.Equal(t, "Goroutines", snippet[highlights[0].Start:highlights[0].End])
}

func TestBuildSnippetShortText(t *testing.T) {
	// Text ngắn hơn bán kính snippet: giữ nguyên toàn bộ
	snippet, highlights, ok := BuildSnippet("hello world", "world")
	require.True(t, ok)
	assert.Equal(t, "hello world", snippet)
	require.Len(t, highlights, 1)
	assert.Equal(t, Highlight{Start: 6, End: 11}, highlights[0])
}

func TestBuildSnippetLongText(t *testing.T) {
	// Match nằm giữa một transcript dài: snippet cắt quanh match theo bán kính
	prefix := strings.Repeat("a", 500)
	suffix := strings.Repeat("b", 500)
	text := prefix + "needle" + suffix

	snippet, highlights, ok := BuildSnippet(text, "needle")
	require.True(t, ok)
	assert.LessOrEqual(t, len(snippet), len("needle")+2*SnippetRadius)
	require.Len(t, highlights, 1)
	assert.Equal(t, "needle", snippet[highlights[0].Start:highlights[0].End])
}

func TestBuildSnippetMultipleMatches(t *testing.T) {
	snippet, highlights, ok := BuildSnippet("go is fun, go is fast", "go")
	require.True(t, ok)
	require.Len(t, highlights, 2)
	for _, h := range highlights {
		assert.Equal(t, "go", strings.ToLower(snippet[h.Start:h.End]))
	}
}

func TestBuildSnippetLengthChangingRunes(t *testing.T) {
	// ToLower đổi độ dài byte của một số rune (K Kelvin U+212A → k,
	// İ U+0130 → i̇): offset phải tính trên text gốc, không được lệch hay panic
	cases := []struct {
		name string
		text string
	}{
		{name: "kelvin", text: "nhiệt độ 300K " + strings.Repeat("a", 60) + " needle"},
		{name: "istanbul", text: "İstanbul video hay needle xem thêm"},
	}

	for _, tc := range cases {
		snippet, highlights, ok := BuildSnippet(tc.text, "needle")
		require.True(t, ok, tc.name)
		require.Len(t, highlights, 1, tc.name)
		assert.Equal(t, "needle", snippet[highlights[0].Start:highlights[0].End], tc.name)
		assert.True(t, utf8.ValidString(snippet), tc.name)
	}
}

func TestBuildSnippetUTF8Boundary(t *testing.T) {
	// Không được cắt giữa một ký tự nhiều byte (tiếng Việt)
	prefix := strings.Repeat("đắk lắk ", 30)
	text := prefix + "golang" + prefix

	snippet, highlights, ok := BuildSnippet(text, "golang")
	require.True(t, ok)
	require.Len(t, highlights, 1)
	// Snippet phải là chuỗi UTF-8 hợp lệ và chứa match nguyên vẹn
	assert.True(t, utf8.ValidString(snippet), "snippet bị cắt giữa ký tự nhiều byte")
	assert.True(t, strings.Contains(snippet, "golang"))
	assert.Equal(t, "golang", snippet[highlights[0].Start:highlights[0].End])
}
