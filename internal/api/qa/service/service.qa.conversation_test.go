package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	librarymodels "knowledge_miner/internal/api/library/models"
	models "knowledge_miner/internal/api/qa/models"
)

func TestExtractCitations(t *testing.T) {
	transcript := "Goroutines là đơn vị thực thi nhẹ của Go. Channel là cơ chế giao tiếp giữa các goroutine."
	answer := "Theo video, «Channel là cơ chế giao tiếp» giữa các goroutine."

	citations := ExtractCitations(transcript, answer)
	if len(citations) != 1 {
		t.Fatalf("Phải trích được 1 citation, nhận được %d", len(citations))
	}
	c := citations[0]
	if c.Quote != "Channel là cơ chế giao tiếp" {
		t.Errorf("Quote sai: %q", c.Quote)
	}
	if transcript[c.Start:c.End] != c.Quote {
		t.Errorf("Offset [%d:%d] không khớp quote trong transcript", c.Start, c.End)
	}
}

func TestExtractCitationsCaseInsensitive(t *testing.T) {
	transcript := "Concurrency không phải là parallelism."
	answer := "«CONCURRENCY KHÔNG PHẢI là parallelism» là ý chính."

	citations := ExtractCitations(transcript, answer)
	if len(citations) != 1 {
		t.Fatalf("Khớp không phân biệt hoa thường thất bại, nhận được %d citation", len(citations))
	}
	// Quote trả về phải là nguyên văn transcript, không phải bản trong câu trả lời
	if citations[0].Quote != "Concurrency không phải là parallelism" {
		t.Errorf("Quote phải lấy nguyên văn từ transcript, nhận được %q", citations[0].Quote)
	}
}

func TestExtractCitationsLengthChangingRunes(t *testing.T) {
	// ToLower đổi độ dài byte của K Kelvin (U+212A) và İ (U+0130):
	// offset phải đúng trên transcript gốc, không lệch, không panic
	transcript := "Nhiệt độ sôi là 373K theo İstanbul. Đoạn trích dẫn nằm ở cuối transcript này."
	answer := "Video nói «Đoạn trích dẫn nằm ở cuối transcript» rõ ràng."

	citations := ExtractCitations(transcript, answer)
	if len(citations) != 1 {
		t.Fatalf("Phải trích được 1 citation, nhận được %d", len(citations))
	}
	c := citations[0]
	if transcript[c.Start:c.End] != c.Quote {
		t.Errorf("Offset [%d:%d] lệch khỏi transcript gốc: %q", c.Start, c.End, transcript[c.Start:c.End])
	}
	if !utf8.ValidString(c.Quote) {
		t.Error("Quote chứa byte UTF-8 không hợp lệ")
	}
}

func TestExtractCitationsSkipsShortAndUnmatched(t *testing.T) {
	transcript := "Nội dung transcript đủ dài để đối chiếu trích dẫn."
	answer := "«ngắn» và «đoạn này hoàn toàn không có trong transcript gốc đâu nhé»"

	if citations := ExtractCitations(transcript, answer); len(citations) != 0 {
		t.Errorf("Trích dẫn quá ngắn hoặc không khớp phải bị bỏ qua, nhận được %d", len(citations))
	}
	if citations := ExtractCitations("", answer); citations != nil {
		t.Error("Transcript rỗng phải trả về nil")
	}
}

func TestBuildChatMessagesTruncatesOnRuneBoundary(t *testing.T) {
	// Transcript toàn ký tự 3 byte, dài hơn hạn mức: vị trí cắt rơi giữa rune
	video := &librarymodels.Video{
		Title:      "Video dài",
		Channel:    "Kênh test",
		Transcript: "a" + strings.Repeat("ệ", maxTranscriptChars/3+100),
	}

	messages := buildChatMessages(video, nil, "Câu hỏi?")
	if len(messages) != 2 {
		t.Fatalf("Phải có system prompt + câu hỏi, nhận được %d message", len(messages))
	}
	system := messages[0].Content
	if !utf8.ValidString(system) {
		t.Error("System prompt bị cắt giữa một ký tự UTF-8")
	}
	if len(system) > len(video.Transcript) {
		t.Error("Transcript trong system prompt không được dài hơn bản gốc")
	}
	if messages[1].Role != "user" || messages[1].Content != "Câu hỏi?" {
		t.Errorf("Message cuối phải là câu hỏi của user, nhận được %+v", messages[1])
	}
}

func TestBuildChatMessagesIncludesHistory(t *testing.T) {
	video := &librarymodels.Video{Title: "T", Channel: "C", Transcript: "transcript ngắn"}
	history := []models.QaMessage{
		{Role: "user", Content: "Hỏi trước"},
		{Role: "assistant", Content: "Đáp trước"},
	}

	messages := buildChatMessages(video, history, "Hỏi mới")
	if len(messages) != 4 {
		t.Fatalf("Phải có system + 2 lịch sử + câu hỏi mới, nhận được %d", len(messages))
	}
	if messages[1].Content != "Hỏi trước" || messages[2].Role != "assistant" {
		t.Error("Lịch sử hội thoại phải giữ nguyên thứ tự")
	}
}
