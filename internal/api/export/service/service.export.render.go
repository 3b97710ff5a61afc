// Package service hiện thực xuất dữ liệu thư viện: render các format
// txt/csv/json/markdown, giao qua download hoặc email.
package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	librarymodels "knowledge_miner/internal/api/library/models"
	qamodels "knowledge_miner/internal/api/qa/models"
	"knowledge_miner/internal/common"
)

// ConversationExport là một hội thoại hỏi đáp kèm theo video được xuất
type ConversationExport struct {
	Title    string              `json:"title"`
	Messages []qamodels.QaMessage `json:"messages"`
}

// VideoExport là một video kèm dữ liệu phụ được xuất
type VideoExport struct {
	Video         librarymodels.Video  `json:"video"`
	Conversations []ConversationExport `json:"conversations,omitempty"`
}

// ExportBundle là toàn bộ nội dung của một lần export
type ExportBundle struct {
	GeneratedAt  time.Time     `json:"generatedAt"`
	IncludeNotes bool          `json:"includeNotes"`
	IncludeQA    bool          `json:"includeQA"`
	Videos       []VideoExport `json:"videos"`
}

// RenderedExport là kết quả render: nội dung file, tên file và MIME type
type RenderedExport struct {
	Content  []byte `json:"content"`
	Filename string `json:"filename"`
	MIMEType string `json:"mimeType"`
}

// formatMIME map format sang MIME type
var formatMIME = map[string]string{
	"txt":      "text/plain; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
	"json":     "application/json; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
}

// formatExt map format sang phần mở rộng file
var formatExt = map[string]string{
	"txt":      "txt",
	"csv":      "csv",
	"json":     "json",
	"markdown": "md",
}

// Render tạo nội dung export theo format yêu cầu
func Render(bundle *ExportBundle, format string) (*RenderedExport, error) {
	var content []byte
	var err error
	switch format {
	case "txt":
		content, err = renderTXT(bundle)
	case "csv":
		content, err = renderCSV(bundle)
	case "json":
		content, err = renderJSON(bundle)
	case "markdown":
		content, err = renderMarkdown(bundle)
	default:
		return nil, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Format '%s' không được hỗ trợ", format), common.StatusBadRequest, nil)
	}
	if err != nil {
		return nil, common.NewError(common.ErrCodeBusinessOperation, "Không thể tạo nội dung export", common.StatusInternalServerError, err)
	}

	return &RenderedExport{
		Content:  content,
		Filename: fmt.Sprintf("library_export_%s.%s", bundle.GeneratedAt.Format("20060102_150405"), formatExt[format]),
		MIMEType: formatMIME[format],
	}, nil
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatTimestamp nhận mốc Unix milli (chuẩn timestamp của storage layer)
func formatTimestamp(unixMilli int64) string {
	if unixMilli == 0 {
		return ""
	}
	return time.UnixMilli(unixMilli).UTC().Format("2006-01-02")
}

func renderTXT(bundle *ExportBundle) ([]byte, error) {
	var sb strings.Builder
	for i, ve := range bundle.Videos {
		v := ve.Video
		if i > 0 {
			sb.WriteString("\n" + strings.Repeat("=", 72) + "\n\n")
		}
		sb.WriteString(fmt.Sprintf("Tiêu đề: %s\n", v.Title))
		sb.WriteString(fmt.Sprintf("Kênh: %s\n", v.Channel))
		sb.WriteString(fmt.Sprintf("URL: %s\n", v.URL))
		if v.Duration > 0 {
			sb.WriteString(fmt.Sprintf("Thời lượng: %s\n", formatDuration(v.Duration)))
		}
		if v.PublishedAt > 0 {
			sb.WriteString(fmt.Sprintf("Ngày đăng: %s\n", formatTimestamp(v.PublishedAt)))
		}
		if v.Summary != "" {
			sb.WriteString(fmt.Sprintf("\nTóm tắt:\n%s\n", v.Summary))
		}
		if bundle.IncludeNotes && v.Notes != "" {
			sb.WriteString(fmt.Sprintf("\nGhi chú:\n%s\n", v.Notes))
		}
		if v.Transcript != "" {
			sb.WriteString(fmt.Sprintf("\nTranscript:\n%s\n", v.Transcript))
		}
		for _, conv := range ve.Conversations {
			sb.WriteString(fmt.Sprintf("\nHỏi đáp: %s\n", conv.Title))
			for _, m := range conv.Messages {
				sb.WriteString(fmt.Sprintf("[%s] %s\n", m.Role, m.Content))
			}
		}
	}
	return []byte(sb.String()), nil
}

func renderCSV(bundle *ExportBundle) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"youtubeId", "title", "channel", "url", "duration", "publishedAt", "status", "rating", "isFavorite", "summary"}
	if bundle.IncludeNotes {
		header = append(header, "notes")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, ve := range bundle.Videos {
		v := ve.Video
		row := []string{
			v.YouTubeID,
			v.Title,
			v.Channel,
			v.URL,
			strconv.FormatInt(v.Duration, 10),
			formatTimestamp(v.PublishedAt),
			v.Status,
			strconv.Itoa(v.Rating),
			strconv.FormatBool(v.IsFavorite),
			v.Summary,
		}
		if bundle.IncludeNotes {
			row = append(row, v.Notes)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderJSON(bundle *ExportBundle) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

func renderMarkdown(bundle *ExportBundle) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Thư viện video — export %s\n", bundle.GeneratedAt.UTC().Format("2006-01-02")))
	for _, ve := range bundle.Videos {
		v := ve.Video
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", v.Title))
		sb.WriteString(fmt.Sprintf("- Kênh: %s\n", v.Channel))
		sb.WriteString(fmt.Sprintf("- URL: <%s>\n", v.URL))
		if v.Duration > 0 {
			sb.WriteString(fmt.Sprintf("- Thời lượng: %s\n", formatDuration(v.Duration)))
		}
		if v.PublishedAt > 0 {
			sb.WriteString(fmt.Sprintf("- Ngày đăng: %s\n", formatTimestamp(v.PublishedAt)))
		}
		if v.Summary != "" {
			sb.WriteString(fmt.Sprintf("\n### Tóm tắt\n\n%s\n", v.Summary))
		}
		if bundle.IncludeNotes && v.Notes != "" {
			sb.WriteString(fmt.Sprintf("\n### Ghi chú\n\n%s\n", v.Notes))
		}
		if v.Transcript != "" {
			sb.WriteString(fmt.Sprintf("\n### Transcript\n\n%s\n", v.Transcript))
		}
		for _, conv := range ve.Conversations {
			sb.WriteString(fmt.Sprintf("\n### Hỏi đáp: %s\n\n", conv.Title))
			for _, m := range conv.Messages {
				sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", m.Role, m.Content))
			}
		}
	}
	return []byte(sb.String()), nil
}
