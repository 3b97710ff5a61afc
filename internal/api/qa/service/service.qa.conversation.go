package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	basemodels "knowledge_miner/internal/api/base/models"
	basesvc "knowledge_miner/internal/api/base/service"
	librarymodels "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	qadto "knowledge_miner/internal/api/qa/dto"
	models "knowledge_miner/internal/api/qa/models"
	"knowledge_miner/internal/client"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// maxTranscriptChars giới hạn transcript đưa vào ngữ cảnh LLM
	maxTranscriptChars = 12000

	// historyLimit số lượt hội thoại gần nhất gửi kèm cho LLM
	historyLimit = 10

	// maxCitations số citation tối đa trên một câu trả lời
	maxCitations = 5

	// minCitationLen độ dài tối thiểu của một đoạn trích dẫn
	minCitationLen = 15
)

// ConversationDetail là hội thoại kèm toàn bộ message, sắp theo thời gian
type ConversationDetail struct {
	Conversation models.QaConversation `json:"conversation"`
	Messages     []models.QaMessage    `json:"messages"`
}

// ConversationService quản lý hội thoại hỏi đáp
type ConversationService struct {
	*basesvc.BaseServiceMongoImpl[models.QaConversation]
	messageService *MessageService
	videoService   *librarysvc.VideoService
	llmClient      *client.LLMClient
}

// NewConversationService tạo mới ConversationService
func NewConversationService(llmClient *client.LLMClient) (*ConversationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.QaConversations)
	if !exist {
		return nil, fmt.Errorf("failed to get qa_conversations collection: %v", common.ErrNotFound)
	}
	messageService, err := NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	return &ConversationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.QaConversation](collection),
		messageService:       messageService,
		videoService:         videoService,
		llmClient:            llmClient,
	}, nil
}

// MessageService trả về service message, dùng cho CRUD quản trị
func (s *ConversationService) MessageService() *MessageService {
	return s.messageService
}

// CreateConversation tạo hội thoại mới. Video phải thuộc caller và đã ở
// trạng thái ready, nếu chưa trả về lỗi nghiệp vụ.
func (s *ConversationService) CreateConversation(ctx context.Context, videoID primitive.ObjectID, title string, ownerID *primitive.ObjectID, sessionID string) (*models.QaConversation, error) {
	filter := librarysvc.OwnerFilter(ownerID, sessionID)
	filter["_id"] = videoID
	video, err := s.videoService.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	if video.Status != librarymodels.VideoStatusReady {
		return nil, common.ErrVideoNotReady
	}

	if title == "" {
		title = video.Title
	}
	conversation := models.QaConversation{
		VideoID:            videoID,
		Title:              title,
		OwnerID:            ownerID,
		AnonymousSessionID: sessionID,
	}
	if ownerID != nil {
		conversation.AnonymousSessionID = ""
	}
	created, err := s.InsertOne(ctx, conversation)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"conversation_id": created.ID.Hex(), "video_id": videoID.Hex()}).Info("CreateConversation: Đã tạo hội thoại")
	return &created, nil
}

// List trả về hội thoại của caller, mới nhất trước, lọc theo video nếu có
func (s *ConversationService) List(ctx context.Context, query *qadto.ConversationListQuery, ownerID *primitive.ObjectID, sessionID string) (*basemodels.PaginateResult[models.QaConversation], error) {
	filter := librarysvc.OwnerFilter(ownerID, sessionID)
	if query.VideoID != "" {
		videoID, err := primitive.ObjectIDFromHex(query.VideoID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "videoId không hợp lệ", common.StatusBadRequest, err)
		}
		filter["videoId"] = videoID
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.BaseServiceMongoImpl.FindWithPagination(ctx, filter, page, limit, opts)
}

// GetWithMessages trả về hội thoại kèm toàn bộ message theo thứ tự thời gian
func (s *ConversationService) GetWithMessages(ctx context.Context, conversationID primitive.ObjectID) (*ConversationDetail, error) {
	conversation, err := s.FindOneById(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	messages, err := s.messageService.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	return &ConversationDetail{Conversation: conversation, Messages: messages}, nil
}

// Ask ghi câu hỏi vào hội thoại, gọi LLM với ngữ cảnh transcript và lịch sử
// hội thoại, rồi lưu câu trả lời của assistant kèm citation.
func (s *ConversationService) Ask(ctx context.Context, conversationID primitive.ObjectID, question string) (*models.QaMessage, error) {
	conversation, err := s.FindOneById(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	video, err := s.videoService.FindOneById(ctx, conversation.VideoID)
	if err != nil {
		return nil, err
	}
	if video.Status != librarymodels.VideoStatusReady {
		return nil, common.ErrVideoNotReady
	}

	history, err := s.recentMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	userMessage := models.QaMessage{
		ConversationID:     conversationID,
		Role:               models.MessageRoleUser,
		Content:            question,
		OwnerID:            conversation.OwnerID,
		AnonymousSessionID: conversation.AnonymousSessionID,
	}
	if _, err := s.messageService.InsertOne(ctx, userMessage); err != nil {
		return nil, err
	}

	answer, err := s.llmClient.Complete(ctx, buildChatMessages(&video, history, question))
	if err != nil {
		// Câu hỏi đã được lưu, chỉ cập nhật bộ đếm rồi trả lỗi
		s.bumpMessageCount(ctx, conversationID, conversation.MessageCount+1)
		return nil, err
	}

	assistantMessage := models.QaMessage{
		ConversationID:     conversationID,
		Role:               models.MessageRoleAssistant,
		Content:            answer,
		Citations:          ExtractCitations(video.Transcript, answer),
		OwnerID:            conversation.OwnerID,
		AnonymousSessionID: conversation.AnonymousSessionID,
	}
	created, err := s.messageService.InsertOne(ctx, assistantMessage)
	if err != nil {
		return nil, err
	}
	s.bumpMessageCount(ctx, conversationID, conversation.MessageCount+2)

	logrus.WithFields(logrus.Fields{"conversation_id": conversationID.Hex(), "citations": len(created.Citations)}).Info("Ask: Đã trả lời câu hỏi")
	return &created, nil
}

// DeleteConversation xóa hội thoại và toàn bộ message bên trong
func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID primitive.ObjectID) error {
	if _, err := s.FindOneById(ctx, conversationID); err != nil {
		return err
	}
	if _, err := s.messageService.DeleteMany(ctx, bson.M{"conversationId": conversationID}); err != nil {
		return err
	}
	return s.DeleteById(ctx, conversationID)
}

// recentMessages lấy các lượt gần nhất, trả về theo thứ tự thời gian tăng dần
func (s *ConversationService) recentMessages(ctx context.Context, conversationID primitive.ObjectID) ([]models.QaMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(historyLimit)
	messages, err := s.messageService.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *ConversationService) bumpMessageCount(ctx context.Context, conversationID primitive.ObjectID, count int64) {
	if _, err := s.UpdateById(ctx, conversationID, &basesvc.UpdateData{Set: map[string]interface{}{"messageCount": count}}); err != nil {
		logrus.WithFields(logrus.Fields{"conversation_id": conversationID.Hex(), "error": err.Error()}).Warn("Ask: Không cập nhật được messageCount")
	}
}

// buildChatMessages dựng hội thoại gửi lên LLM: system prompt chứa metadata
// và transcript (cắt bớt khi quá dài), sau đó là lịch sử và câu hỏi mới.
func buildChatMessages(video *librarymodels.Video, history []models.QaMessage, question string) []client.ChatMessage {
	transcript := video.Transcript
	if len(transcript) > maxTranscriptChars {
		// Lùi về đầu rune để không cắt giữa một ký tự UTF-8
		cut := maxTranscriptChars
		for cut > 0 && !utf8.RuneStart(transcript[cut]) {
			cut--
		}
		transcript = transcript[:cut]
	}

	var sb strings.Builder
	sb.WriteString("Bạn là trợ lý trả lời câu hỏi dựa trên transcript của một video YouTube.\n")
	sb.WriteString("Chỉ dùng thông tin trong transcript. Nếu transcript không có câu trả lời, hãy nói rõ là không tìm thấy.\n")
	sb.WriteString("Khi trích lại nguyên văn một đoạn transcript làm căn cứ, đặt đoạn đó trong dấu «».\n\n")
	sb.WriteString(fmt.Sprintf("Tiêu đề: %s\nKênh: %s\n\nTranscript:\n%s", video.Title, video.Channel, transcript))

	messages := []client.ChatMessage{{Role: "system", Content: sb.String()}}
	for _, m := range history {
		messages = append(messages, client.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, client.ChatMessage{Role: "user", Content: question})
	return messages
}

var citationPattern = regexp.MustCompile(`«([^»]+)»`)

// ExtractCitations tìm các đoạn «...» trong câu trả lời và định vị chúng
// trong transcript. Đoạn không khớp transcript bị bỏ qua.
func ExtractCitations(transcript, answer string) []models.Citation {
	if transcript == "" {
		return nil
	}

	var citations []models.Citation
	for _, match := range citationPattern.FindAllStringSubmatch(answer, -1) {
		quote := strings.TrimSpace(match[1])
		if len(quote) < minCitationLen {
			continue
		}
		// Khớp không phân biệt hoa thường bằng regexp (?i): offset từ ToLower
		// sẽ lệch khỏi transcript gốc khi ToLower đổi độ dài byte (K Kelvin, İ)
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(quote))
		if err != nil {
			continue
		}
		loc := re.FindStringIndex(transcript)
		if loc == nil {
			continue
		}
		citations = append(citations, models.Citation{
			Quote: transcript[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
		if len(citations) >= maxCitations {
			break
		}
	}
	return citations
}
