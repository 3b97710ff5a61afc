// Package service hiện thực hỏi đáp trên transcript video: quản lý hội thoại,
// gọi LLM với ngữ cảnh transcript, trích xuất citation.
package service

import (
	"fmt"

	basesvc "knowledge_miner/internal/api/base/service"
	models "knowledge_miner/internal/api/qa/models"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"
)

// MessageService quản lý các message trong hội thoại
type MessageService struct {
	*basesvc.BaseServiceMongoImpl[models.QaMessage]
}

// NewMessageService tạo mới MessageService
func NewMessageService() (*MessageService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.QaMessages)
	if !exist {
		return nil, fmt.Errorf("failed to get qa_messages collection: %v", common.ErrNotFound)
	}
	return &MessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.QaMessage](collection),
	}, nil
}
