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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionHandler xử lý các request về collection (playlist) trong thư viện
type CollectionHandler struct {
	*basehdl.BaseHandler[models.Collection, librarydto.CollectionCreateInput, librarydto.CollectionUpdateInput]
	CollectionService *librarysvc.CollectionService
}

// NewCollectionHandler tạo mới CollectionHandler
func NewCollectionHandler() (*CollectionHandler, error) {
	collectionService, err := librarysvc.NewCollectionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create collection service: %v", err)
	}
	hdl := &CollectionHandler{CollectionService: collectionService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Collection, librarydto.CollectionCreateInput, librarydto.CollectionUpdateInput](collectionService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleList trả về các collection của caller
func (h *CollectionHandler) HandleList(c fiber.Ctx) error {
	filter := h.ApplyOwnerFilter(c, bson.M{})
	collections, err := h.CollectionService.Find(c.Context(), filter, nil)
	h.HandleResponse(c, collections, err)
	return nil
}

// HandleCreate tạo collection mới cho caller
func (h *CollectionHandler) HandleCreate(c fiber.Ctx) error {
	var input librarydto.CollectionCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	collection := models.Collection{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := h.ApplyOwnerToModel(c, &collection); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	created, err := h.CollectionService.InsertOne(c.Context(), collection)
	h.HandleResponse(c, created, err)
	return nil
}

// parseCollectionID lấy và validate collection id từ path param, kèm kiểm tra quyền sở hữu
func (h *CollectionHandler) parseCollectionID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	collectionID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err)
	}
	if err := h.ValidateOwnerAccess(c, id); err != nil {
		return primitive.NilObjectID, err
	}
	return collectionID, nil
}

// HandleGet trả về collection kèm danh sách video bên trong
func (h *CollectionHandler) HandleGet(c fiber.Ctx) error {
	collectionID, err := h.parseCollectionID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	collection, err := h.CollectionService.FindOneById(c.Context(), collectionID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	videos, err := h.CollectionService.ListVideos(c.Context(), collectionID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, map[string]interface{}{
		"collection": collection,
		"videos":     videos,
	}, nil)
	return nil
}

// HandleUpdate đổi tên / mô tả collection
func (h *CollectionHandler) HandleUpdate(c fiber.Ctx) error {
	collectionID, err := h.parseCollectionID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input librarydto.CollectionUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không có thông tin nào để cập nhật", common.StatusBadRequest, nil))
		return nil
	}

	updated, err := h.CollectionService.UpdateById(c.Context(), collectionID, &basesvc.UpdateData{Set: set})
	h.HandleResponse(c, updated, err)
	return nil
}

// HandleDelete xóa collection (chặn khi còn collection item)
func (h *CollectionHandler) HandleDelete(c fiber.Ctx) error {
	collectionID, err := h.parseCollectionID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.CollectionService.DeleteById(c.Context(), collectionID)
	h.HandleResponse(c, nil, err)
	return nil
}

// parseVideoParam lấy video id từ path param :videoId
func (h *CollectionHandler) parseVideoParam(c fiber.Ctx) (primitive.ObjectID, error) {
	videoID, err := primitive.ObjectIDFromHex(c.Params("videoId"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "videoId không hợp lệ", common.StatusBadRequest, err)
	}
	return videoID, nil
}

// HandleAddVideo thêm video vào collection
func (h *CollectionHandler) HandleAddVideo(c fiber.Ctx) error {
	collectionID, err := h.parseCollectionID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	videoID, err := h.parseVideoParam(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	item, err := h.CollectionService.AddVideo(c.Context(), collectionID, videoID, ownerID, sessionID)
	h.HandleResponse(c, item, err)
	return nil
}

// HandleRemoveVideo gỡ video khỏi collection
func (h *CollectionHandler) HandleRemoveVideo(c fiber.Ctx) error {
	collectionID, err := h.parseCollectionID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	videoID, err := h.parseVideoParam(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.CollectionService.RemoveVideo(c.Context(), collectionID, videoID)
	h.HandleResponse(c, nil, err)
	return nil
}
