// Package service hiện thực tìm kiếm trong thư viện: text search với snippet
// và highlight offsets, semantic search proxy qua dịch vụ vector.
package service

import (
	"context"
	"fmt"
	"regexp"

	searchdto "knowledge_miner/internal/api/search/dto"

	models "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	"knowledge_miner/internal/client"
	"knowledge_miner/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// SnippetRadius là số ký tự ngữ cảnh quanh vị trí khớp đầu tiên
	SnippetRadius = 80

	defaultSearchLimit = 20
)

// Highlight là offset [start, end) của một lần khớp bên trong snippet
type Highlight struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SearchHit là một kết quả tìm kiếm
type SearchHit struct {
	VideoID    primitive.ObjectID `json:"videoId"`
	Title      string             `json:"title"`
	Field      string             `json:"field"` // title | description | transcript | notes
	Snippet    string             `json:"snippet"`
	Highlights []Highlight        `json:"highlights"`
	Score      float64            `json:"score,omitempty"` // Chỉ có ở mode semantic
}

// SearchMeta mô tả cách kết quả được tạo ra
type SearchMeta struct {
	Mode     string `json:"mode"`     // text | semantic
	Fallback bool   `json:"fallback"` // true khi semantic rơi về text
	Total    int    `json:"total"`
}

// SearchResult là response của một lần tìm kiếm
type SearchResult struct {
	Hits []SearchHit `json:"hits"`
	Meta SearchMeta  `json:"meta"`
}

// SearchService tìm kiếm trong phạm vi thư viện của caller
type SearchService struct {
	videoService *librarysvc.VideoService
	vectorClient *client.VectorClient
}

// NewSearchService tạo mới SearchService
func NewSearchService(vectorClient *client.VectorClient) (*SearchService, error) {
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	return &SearchService{
		videoService: videoService,
		vectorClient: vectorClient,
	}, nil
}

// scopeFields map scope sang danh sách field được tìm
func scopeFields(scope string) []string {
	switch scope {
	case "transcripts":
		return []string{"transcript"}
	case "notes":
		return []string{"notes"}
	default:
		return []string{"title", "description", "transcript", "notes"}
	}
}

// fieldValue lấy giá trị text của một field trên video
func fieldValue(video *models.Video, field string) string {
	switch field {
	case "title":
		return video.Title
	case "description":
		return video.Description
	case "transcript":
		return video.Transcript
	case "notes":
		return video.Notes
	}
	return ""
}

// Search thực hiện tìm kiếm theo mode yêu cầu. Semantic tự rơi về text
// khi dịch vụ vector không khả dụng, đánh dấu meta.fallback.
func (s *SearchService) Search(ctx context.Context, query *searchdto.SearchQuery, ownerID *primitive.ObjectID, sessionID string) (*SearchResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if query.Mode == "semantic" {
		result, err := s.semanticSearch(ctx, query.Q, ownerID, sessionID, limit)
		if err == nil {
			return result, nil
		}
		logger.GetAppLogger().WithError(err).Warn("🔍 [SEARCH] Semantic search không khả dụng, rơi về text search")
		result, err = s.textSearch(ctx, query.Q, query.Scope, ownerID, sessionID, limit)
		if err != nil {
			return nil, err
		}
		result.Meta.Fallback = true
		return result, nil
	}

	return s.textSearch(ctx, query.Q, query.Scope, ownerID, sessionID, limit)
}

// textSearch so khớp chuỗi case-insensitive trên các field trong scope
func (s *SearchService) textSearch(ctx context.Context, q, scope string, ownerID *primitive.ObjectID, sessionID string, limit int) (*SearchResult, error) {
	fields := scopeFields(scope)
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}

	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: pattern})
	}
	filter := librarysvc.OwnerFilter(ownerID, sessionID)
	filter["$or"] = or

	videos, err := s.videoService.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	hits := []SearchHit{}
	for i := range videos {
		if len(hits) >= limit {
			break
		}
		for _, field := range fields {
			snippet, highlights, ok := BuildSnippet(fieldValue(&videos[i], field), q)
			if !ok {
				continue
			}
			hits = append(hits, SearchHit{
				VideoID:    videos[i].ID,
				Title:      videos[i].Title,
				Field:      field,
				Snippet:    snippet,
				Highlights: highlights,
			})
			// Mỗi video chỉ lấy field khớp đầu tiên theo thứ tự scope
			break
		}
	}

	return &SearchResult{
		Hits: hits,
		Meta: SearchMeta{Mode: "text", Total: len(hits)},
	}, nil
}

// semanticSearch gửi query lên dịch vụ vector, giới hạn trong thư viện của
// caller, rồi hydrate kết quả từ video thật trong thư viện.
func (s *SearchService) semanticSearch(ctx context.Context, q string, ownerID *primitive.ObjectID, sessionID string, limit int) (*SearchResult, error) {
	filter := librarysvc.OwnerFilter(ownerID, sessionID)
	filter["status"] = models.VideoStatusReady
	videos, err := s.videoService.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	videoByID := make(map[string]*models.Video, len(videos))
	videoIDs := make([]string, 0, len(videos))
	for i := range videos {
		hex := videos[i].ID.Hex()
		videoByID[hex] = &videos[i]
		videoIDs = append(videoIDs, hex)
	}
	if len(videoIDs) == 0 {
		return &SearchResult{Hits: []SearchHit{}, Meta: SearchMeta{Mode: "semantic", Total: 0}}, nil
	}

	vectorHits, err := s.vectorClient.Search(ctx, q, videoIDs, limit)
	if err != nil {
		return nil, err
	}

	hits := []SearchHit{}
	for _, vh := range vectorHits {
		video, ok := videoByID[vh.VideoID]
		if !ok {
			// Dịch vụ vector trả về video ngoài thư viện của caller: bỏ qua
			continue
		}
		hits = append(hits, SearchHit{
			VideoID: video.ID,
			Title:   video.Title,
			Field:   "transcript",
			Snippet: vh.Snippet,
			Score:   vh.Score,
		})
	}

	return &SearchResult{
		Hits: hits,
		Meta: SearchMeta{Mode: "semantic", Total: len(hits)},
	}, nil
}

// BuildSnippet tìm các lần khớp case-insensitive của q trong text và trả về
// snippet quanh lần khớp đầu tiên cùng offset highlight tương đối trong snippet.
func BuildSnippet(text, q string) (string, []Highlight, bool) {
	if text == "" || q == "" {
		return "", nil, false
	}
	// Tìm theo regexp (?i) thay vì ToLower cả chuỗi: ToLower không giữ nguyên
	// độ dài byte (K Kelvin → k, İ → i̇) nên offset sẽ lệch khỏi text gốc.
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(q))
	if err != nil {
		return "", nil, false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", nil, false
	}

	start := loc[0] - SnippetRadius
	if start < 0 {
		start = 0
	}
	end := loc[1] + SnippetRadius
	if end > len(text) {
		end = len(text)
	}
	// Không cắt giữa một ký tự UTF-8
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}

	snippet := text[start:end]
	highlights := []Highlight{}
	for _, m := range re.FindAllStringIndex(snippet, -1) {
		highlights = append(highlights, Highlight{Start: m[0], End: m[1]})
	}
	return snippet, highlights, true
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
