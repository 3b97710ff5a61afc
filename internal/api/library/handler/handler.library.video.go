package libraryhdl

import (
	"fmt"

	basehdl "knowledge_miner/internal/api/base/handler"
	basesvc "knowledge_miner/internal/api/base/service"
	librarydto "knowledge_miner/internal/api/library/dto"
	models "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	"knowledge_miner/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoHandler xử lý các request về video trong thư viện
type VideoHandler struct {
	*basehdl.BaseHandler[models.Video, librarydto.VideoCreateInput, librarydto.VideoUpdateInput]
	VideoService *librarysvc.VideoService
}

// NewVideoHandler tạo mới VideoHandler
func NewVideoHandler() (*VideoHandler, error) {
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	hdl := &VideoHandler{VideoService: videoService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Video, librarydto.VideoCreateInput, librarydto.VideoUpdateInput](videoService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// HandleSubmit nhận URL YouTube và tạo video pending trong thư viện của caller
func (h *VideoHandler) HandleSubmit(c fiber.Ctx) error {
	var input librarydto.VideoSubmitInput
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
	video, err := h.VideoService.Submit(c.Context(), &input, ownerID, sessionID)
	h.HandleResponse(c, video, err)
	return nil
}

// HandleList trả về thư viện của caller với filter, text query, sort, phân trang
func (h *VideoHandler) HandleList(c fiber.Ctx) error {
	var query librarydto.VideoListQuery
	if err := c.Bind().Query(&query); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	result, err := h.VideoService.List(c.Context(), &query, ownerID, sessionID)
	h.HandleResponse(c, result, err)
	return nil
}

// parseVideoID lấy và validate video id từ path param, kèm kiểm tra quyền sở hữu
func (h *VideoHandler) parseVideoID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	videoID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err)
	}
	if err := h.ValidateOwnerAccess(c, id); err != nil {
		return primitive.NilObjectID, err
	}
	return videoID, nil
}

// HandleGet trả về một video (owner-scoped)
func (h *VideoHandler) HandleGet(c fiber.Ctx) error {
	videoID, err := h.parseVideoID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	video, err := h.VideoService.FindOneById(c.Context(), videoID)
	h.HandleResponse(c, video, err)
	return nil
}

// HandleUpdate cập nhật notes, rating, favorite, category, title của video
func (h *VideoHandler) HandleUpdate(c fiber.Ctx) error {
	videoID, err := h.parseVideoID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input librarydto.VideoUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	set := map[string]interface{}{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Notes != "" {
		set["notes"] = input.Notes
	}
	if input.Summary != "" {
		set["summary"] = input.Summary
	}
	if input.Rating != nil {
		set["rating"] = *input.Rating
	}
	if input.IsFavorite != nil {
		set["isFavorite"] = *input.IsFavorite
	}
	if input.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "categoryId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		set["categoryId"] = categoryID
	}
	if len(set) == 0 {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không có thông tin nào để cập nhật", common.StatusBadRequest, nil))
		return nil
	}

	updated, err := h.VideoService.UpdateById(c.Context(), videoID, &basesvc.UpdateData{Set: set})
	h.HandleResponse(c, updated, err)
	return nil
}

// HandleDelete xóa video (chặn khi còn collection item, cascade QA)
func (h *VideoHandler) HandleDelete(c fiber.Ctx) error {
	videoID, err := h.parseVideoID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.VideoService.DeleteVideo(c.Context(), videoID)
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleReprocess đưa video failed trở lại hàng đợi xử lý
func (h *VideoHandler) HandleReprocess(c fiber.Ctx) error {
	videoID, err := h.parseVideoID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	video, err := h.VideoService.Reprocess(c.Context(), videoID)
	h.HandleResponse(c, video, err)
	return nil
}
