package service

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	librarymodels "knowledge_miner/internal/api/library/models"
	qamodels "knowledge_miner/internal/api/qa/models"
	"knowledge_miner/internal/common"
)

// sampleBundle tạo một bundle 2 video để test các hàm render
func sampleBundle() *ExportBundle {
	return &ExportBundle{
		GeneratedAt:  time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		IncludeNotes: true,
		IncludeQA:    true,
		Videos: []VideoExport{
			{
				Video: librarymodels.Video{
					YouTubeID:   "dQw4w9WgXcQ",
					URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
					Title:       "Giới thiệu Goroutines",
					Channel:     "Go Việt Nam",
					Duration:    3725,
					PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
					Transcript:  "nội dung transcript mẫu",
					Summary:     "Tóm tắt về goroutines",
					Notes:       "Ghi chú cá nhân, có \"dấu nháy\"",
					Status:      "completed",
					Rating:      4,
					IsFavorite:  true,
				},
				Conversations: []ConversationExport{
					{
						Title: "Hỏi về channel",
						Messages: []qamodels.QaMessage{
							{Role: "user", Content: "Channel là gì?"},
							{Role: "assistant", Content: "Channel là cơ chế giao tiếp giữa các goroutine."},
						},
					},
				},
			},
			{
				Video: librarymodels.Video{
					YouTubeID: "abc123def45",
					URL:       "https://www.youtube.com/watch?v=abc123def45",
					Title:     "Video chưa xử lý",
					Channel:   "Kênh khác",
					Status:    "pending",
				},
			},
		},
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(sampleBundle(), "pdf")
	if err == nil {
		t.Fatal("Render với format không hỗ trợ phải trả về lỗi")
	}
	appErr, ok := err.(*common.Error)
	if !ok {
		t.Fatalf("Lỗi phải là *common.Error, nhận được %T", err)
	}
	if appErr.Code != common.ErrCodeValidationInput {
		t.Errorf("Mã lỗi phải là ErrCodeValidationInput, nhận được %v", appErr.Code)
	}
}

func TestRenderTXT(t *testing.T) {
	out, err := Render(sampleBundle(), "txt")
	if err != nil {
		t.Fatalf("Render txt thất bại: %v", err)
	}
	if out.MIMEType != "text/plain; charset=utf-8" {
		t.Errorf("MIME type sai: %s", out.MIMEType)
	}
	if out.Filename != "library_export_20260815_103000.txt" {
		t.Errorf("Tên file sai: %s", out.Filename)
	}

	content := string(out.Content)
	for _, want := range []string{
		"Tiêu đề: Giới thiệu Goroutines",
		"Thời lượng: 1:02:05",
		"Ngày đăng: 2025-03-01",
		"Ghi chú:",
		"Hỏi đáp: Hỏi về channel",
		"[assistant] Channel là cơ chế",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Nội dung txt thiếu %q", want)
		}
	}
	// Video thứ hai ngăn cách bằng dòng kẻ
	if !strings.Contains(content, strings.Repeat("=", 72)) {
		t.Error("Nội dung txt thiếu dòng ngăn cách giữa các video")
	}
}

func TestRenderTXTExcludeNotes(t *testing.T) {
	bundle := sampleBundle()
	bundle.IncludeNotes = false
	out, err := Render(bundle, "txt")
	if err != nil {
		t.Fatalf("Render txt thất bại: %v", err)
	}
	if strings.Contains(string(out.Content), "Ghi chú:") {
		t.Error("Nội dung txt không được chứa ghi chú khi IncludeNotes=false")
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleBundle(), "csv")
	if err != nil {
		t.Fatalf("Render csv thất bại: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out.Content))).ReadAll()
	if err != nil {
		t.Fatalf("Nội dung csv không hợp lệ: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV phải có 1 header + 2 dòng dữ liệu, nhận được %d dòng", len(records))
	}
	if records[0][len(records[0])-1] != "notes" {
		t.Errorf("Header cuối phải là notes khi IncludeNotes=true, nhận được %s", records[0][len(records[0])-1])
	}
	row := records[1]
	if row[0] != "dQw4w9WgXcQ" || row[4] != "3725" || row[6] != "completed" || row[8] != "true" {
		t.Errorf("Dòng dữ liệu đầu sai: %v", row)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(sampleBundle(), "json")
	if err != nil {
		t.Fatalf("Render json thất bại: %v", err)
	}

	var decoded ExportBundle
	if err := json.Unmarshal(out.Content, &decoded); err != nil {
		t.Fatalf("Nội dung json không hợp lệ: %v", err)
	}
	if len(decoded.Videos) != 2 {
		t.Errorf("JSON phải chứa 2 video, nhận được %d", len(decoded.Videos))
	}
	if decoded.Videos[0].Video.YouTubeID != "dQw4w9WgXcQ" {
		t.Errorf("YouTubeID sai sau roundtrip: %s", decoded.Videos[0].Video.YouTubeID)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Render(sampleBundle(), "markdown")
	if err != nil {
		t.Fatalf("Render markdown thất bại: %v", err)
	}
	if out.Filename != "library_export_20260815_103000.md" {
		t.Errorf("Tên file markdown phải có đuôi .md, nhận được %s", out.Filename)
	}

	content := string(out.Content)
	for _, want := range []string{
		"## Giới thiệu Goroutines",
		"- URL: <https://www.youtube.com/watch?v=dQw4w9WgXcQ>",
		"### Hỏi đáp: Hỏi về channel",
		"**assistant:**",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Nội dung markdown thiếu %q", want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	// publishedAt lưu theo Unix milli, không phải giây
	ms := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	if got := formatTimestamp(ms); got != "2025-03-01" {
		t.Errorf("formatTimestamp(%d) = %s, muốn 2025-03-01", ms, got)
	}
	if got := formatTimestamp(0); got != "" {
		t.Errorf("formatTimestamp(0) phải trả về chuỗi rỗng, nhận được %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{seconds: 0, want: "0:00"},
		{seconds: 59, want: "0:59"},
		{seconds: 125, want: "2:05"},
		{seconds: 3725, want: "1:02:05"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Errorf("formatDuration(%d) = %s, muốn %s", tc.seconds, got, tc.want)
		}
	}
}
