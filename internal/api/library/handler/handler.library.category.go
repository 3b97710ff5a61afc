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

// CategoryHandler xử lý các request về category của thư viện
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, librarydto.CategoryCreateInput, librarydto.CategoryUpdateInput]
	CategoryService *librarysvc.CategoryService
}

// NewCategoryHandler tạo mới CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := librarysvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	hdl := &CategoryHandler{CategoryService: categoryService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Category, librarydto.CategoryCreateInput, librarydto.CategoryUpdateInput](categoryService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleList trả về category của caller cộng với các category global
func (h *CategoryHandler) HandleList(c fiber.Ctx) error {
	ownerID := h.GetUserIDFromFiberContext(c)
	sessionID := h.GetSessionIDFromFiberContext(c)
	categories, err := h.CategoryService.ListVisible(c.Context(), ownerID, sessionID)
	h.HandleResponse(c, categories, err)
	return nil
}

// HandleCreate tạo category riêng cho caller
func (h *CategoryHandler) HandleCreate(c fiber.Ctx) error {
	var input librarydto.CategoryCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := h.ApplyOwnerToModel(c, &category); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	created, err := h.CategoryService.InsertOne(c.Context(), category)
	h.HandleResponse(c, created, err)
	return nil
}

// HandleUpdate đổi tên / mô tả category (owner-scoped, category hệ thống bị chặn ở tầng service)
func (h *CategoryHandler) HandleUpdate(c fiber.Ctx) error {
	id := h.GetIDFromContext(c)
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateOwnerAccess(c, id); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input librarydto.CategoryUpdateInput
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

	updated, err := h.CategoryService.UpdateById(c.Context(), categoryID, &basesvc.UpdateData{Set: set})
	h.HandleResponse(c, updated, err)
	return nil
}

// HandleDelete xóa category (chặn khi còn video tham chiếu)
func (h *CategoryHandler) HandleDelete(c fiber.Ctx) error {
	id := h.GetIDFromContext(c)
	categoryID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	if err := h.ValidateOwnerAccess(c, id); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.CategoryService.DeleteById(c.Context(), categoryID)
	h.HandleResponse(c, nil, err)
	return nil
}
