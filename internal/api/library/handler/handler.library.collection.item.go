package libraryhdl

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	librarydto "knowledge_miner/internal/api/library/dto"
	models "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
)

// CollectionItemHandler cung cấp CRUD quản trị cho liên kết collection-video
type CollectionItemHandler struct {
	*basehdl.BaseHandler[models.CollectionItem, librarydto.CollectionItemCreateInput, librarydto.CollectionItemUpdateInput]
}

// NewCollectionItemHandler tạo mới CollectionItemHandler
func NewCollectionItemHandler() (*CollectionItemHandler, error) {
	itemService, err := librarysvc.NewCollectionItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create collection item service: %v", err)
	}
	hdl := &CollectionItemHandler{}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CollectionItem, librarydto.CollectionItemCreateInput, librarydto.CollectionItemUpdateInput](itemService.BaseServiceMongoImpl)
	return hdl, nil
}
