// Package handler xử lý request tìm kiếm.
package handler

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	models "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	searchdto "knowledge_miner/internal/api/search/dto"
	searchsvc "knowledge_miner/internal/api/search/service"
	"knowledge_miner/internal/client"
	"knowledge_miner/internal/common"

	"github.com/gofiber/fiber/v3"
)

// SearchHandler xử lý GET /search. Base handler gắn vào collection video
// để dùng chung owner scoping và response helpers.
type SearchHandler struct {
	*basehdl.BaseHandler[models.Video, searchdto.SearchQuery, searchdto.SearchQuery]
	SearchService *searchsvc.SearchService
}

// NewSearchHandler tạo mới SearchHandler
func NewSearchHandler(vectorClient *client.VectorClient) (*SearchHandler, error) {
	searchService, err := searchsvc.NewSearchService(vectorClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %v", err)
	}
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	hdl := &SearchHandler{SearchService: searchService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Video, searchdto.SearchQuery, searchdto.SearchQuery](videoService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleSearch tìm kiếm trong thư viện của caller
func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	var query searchdto.SearchQuery
	if err := c.Bind().Query(&query); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateInput(&query); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	result, err := h.SearchService.Search(c.Context(), &query, ownerID, sessionID)
	h.HandleResponse(c, result, err)
	return nil
}
