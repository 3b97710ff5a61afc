// Package handler xử lý request hỏi đáp.
package handler

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	qadto "knowledge_miner/internal/api/qa/dto"
	models "knowledge_miner/internal/api/qa/models"
	qasvc "knowledge_miner/internal/api/qa/service"
	"knowledge_miner/internal/client"
	"knowledge_miner/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationHandler xử lý các request về hội thoại hỏi đáp
type ConversationHandler struct {
	*basehdl.BaseHandler[models.QaConversation, qadto.ConversationCreateInput, qadto.ConversationUpdateInput]
	ConversationService *qasvc.ConversationService
}

// NewConversationHandler tạo mới ConversationHandler
func NewConversationHandler(llmClient *client.LLMClient) (*ConversationHandler, error) {
	conversationService, err := qasvc.NewConversationService(llmClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	hdl := &ConversationHandler{ConversationService: conversationService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.QaConversation, qadto.ConversationCreateInput, qadto.ConversationUpdateInput](conversationService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleCreateConversation tạo hội thoại mới trên một video đã xử lý xong
func (h *ConversationHandler) HandleCreateConversation(c fiber.Ctx) error {
	var input qadto.ConversationCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	videoID, err := primitive.ObjectIDFromHex(input.VideoID)
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "videoId không hợp lệ", common.StatusBadRequest, err))
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	conversation, err := h.ConversationService.CreateConversation(c.Context(), videoID, input.Title, ownerID, sessionID)
	h.HandleResponse(c, conversation, err)
	return nil
}

// HandleListConversations trả về hội thoại của caller, lọc theo video nếu có
func (h *ConversationHandler) HandleListConversations(c fiber.Ctx) error {
	var query qadto.ConversationListQuery
	if err := c.Bind().Query(&query); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	result, err := h.ConversationService.List(c.Context(), &query, ownerID, sessionID)
	h.HandleResponse(c, result, err)
	return nil
}

// parseConversationID lấy conversation id từ path param, kèm kiểm tra quyền sở hữu
func (h *ConversationHandler) parseConversationID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	conversationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err)
	}
	if err := h.ValidateOwnerAccess(c, id); err != nil {
		return primitive.NilObjectID, err
	}
	return conversationID, nil
}

// HandleGetConversation trả về hội thoại kèm toàn bộ message
func (h *ConversationHandler) HandleGetConversation(c fiber.Ctx) error {
	conversationID, err := h.parseConversationID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	detail, err := h.ConversationService.GetWithMessages(c.Context(), conversationID)
	h.HandleResponse(c, detail, err)
	return nil
}

// HandleAsk gửi câu hỏi vào hội thoại và trả về câu trả lời của assistant
func (h *ConversationHandler) HandleAsk(c fiber.Ctx) error {
	conversationID, err := h.parseConversationID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input qadto.AskInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	answer, err := h.ConversationService.Ask(c.Context(), conversationID, input.Question)
	h.HandleResponse(c, answer, err)
	return nil
}

// HandleDeleteConversation xóa hội thoại và toàn bộ message bên trong
func (h *ConversationHandler) HandleDeleteConversation(c fiber.Ctx) error {
	conversationID, err := h.parseConversationID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.ConversationService.DeleteConversation(c.Context(), conversationID)
	h.HandleResponse(c, nil, err)
	return nil
}
