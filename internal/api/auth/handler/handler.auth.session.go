package authhdl

import (
	"fmt"

	authdto "knowledge_miner/internal/api/auth/dto"
	models "knowledge_miner/internal/api/auth/models"
	authsvc "knowledge_miner/internal/api/auth/service"
	basehdl "knowledge_miner/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
)

// SessionHandler xử lý các request về phiên khách (anonymous session)
type SessionHandler struct {
	*basehdl.BaseHandler[models.AnonymousSession, authdto.SessionCreateInput, authdto.SessionUpdateInput]
	sessionService *authsvc.SessionService
}

// NewSessionHandler tạo instance mới của SessionHandler
func NewSessionHandler() (*SessionHandler, error) {
	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.AnonymousSession, authdto.SessionCreateInput, authdto.SessionUpdateInput](sessionService)
	return &SessionHandler{
		BaseHandler:    baseHandler,
		sessionService: sessionService,
	}, nil
}

// HandleGetOrCreateSession tạo mới hoặc refresh anonymous session.
// Client gửi sessionId hiện có (nếu đã có) trong body, server trả về
// session tương ứng hoặc session mới với UUID do server sinh.
func (h *SessionHandler) HandleGetOrCreateSession(c fiber.Ctx) error {
	var input authdto.SessionCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		// Body rỗng vẫn hợp lệ: tạo session mới
		input.SessionID = ""
	}
	session, err := h.sessionService.GetOrCreate(c.Context(), input.SessionID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if input.SessionID == session.SessionID {
		// Session đã tồn tại: refresh lastSeenAt
		_ = h.sessionService.Touch(c.Context(), session.SessionID)
	}
	h.HandleResponse(c, session, nil)
	return nil
}
