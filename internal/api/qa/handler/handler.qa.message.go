package handler

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	qadto "knowledge_miner/internal/api/qa/dto"
	models "knowledge_miner/internal/api/qa/models"
	qasvc "knowledge_miner/internal/api/qa/service"
)

// MessageHandler cung cấp CRUD quản trị cho message hỏi đáp
type MessageHandler struct {
	*basehdl.BaseHandler[models.QaMessage, qadto.MessageCreateInput, qadto.MessageUpdateInput]
}

// NewMessageHandler tạo mới MessageHandler
func NewMessageHandler() (*MessageHandler, error) {
	messageService, err := qasvc.NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}
	hdl := &MessageHandler{}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.QaMessage, qadto.MessageCreateInput, qadto.MessageUpdateInput](messageService.BaseServiceMongoImpl)
	return hdl, nil
}
