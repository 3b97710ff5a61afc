// Package handler xử lý request export.
package handler

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	exportdto "knowledge_miner/internal/api/export/dto"
	models "knowledge_miner/internal/api/export/models"
	exportsvc "knowledge_miner/internal/api/export/service"
	qasvc "knowledge_miner/internal/api/qa/service"
	"knowledge_miner/internal/client"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// ExportHandler xử lý các request export thư viện
type ExportHandler struct {
	*basehdl.BaseHandler[models.ExportDelivery, exportdto.DeliveryCreateInput, exportdto.DeliveryUpdateInput]
	ExportService *exportsvc.ExportService
}

// NewExportHandler tạo mới ExportHandler
func NewExportHandler(llmClient *client.LLMClient) (*ExportHandler, error) {
	conversationService, err := qasvc.NewConversationService(llmClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	exportService, err := exportsvc.NewExportService(conversationService)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %v", err)
	}
	hdl := &ExportHandler{ExportService: exportService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.ExportDelivery, exportdto.DeliveryCreateInput, exportdto.DeliveryUpdateInput](exportService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleExport render nội dung export và trả về dưới dạng file tải về
func (h *ExportHandler) HandleExport(c fiber.Ctx) error {
	var input exportdto.ExportInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	rendered, err := h.ExportService.Export(c.Context(), &input, ownerID, sessionID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	c.Set("Content-Type", rendered.MIMEType)
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rendered.Filename))
	return c.Send(rendered.Content)
}

// HandleExportEmail render nội dung export rồi gửi qua email
func (h *ExportHandler) HandleExportEmail(c fiber.Ctx) error {
	var input exportdto.ExportEmailInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	delivery, err := h.ExportService.ExportEmail(c.Context(), &input, ownerID, sessionID)
	h.HandleResponse(c, delivery, err)
	return nil
}

// HandleListDeliveries trả về lịch sử export của caller
func (h *ExportHandler) HandleListDeliveries(c fiber.Ctx) error {
	filter := h.ApplyOwnerFilter(c, bson.M{})
	deliveries, err := h.ExportService.Find(c.Context(), filter, nil)
	h.HandleResponse(c, deliveries, err)
	return nil
}
