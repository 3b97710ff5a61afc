// Package librarysvc - service quản lý category.
package librarysvc

import (
	"context"
	"fmt"

	basesvc "knowledge_miner/internal/api/base/service"
	models "knowledge_miner/internal/api/library/models"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService là service quản lý category trong thư viện
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get library_categories collection: %v", common.ErrNotFound)
	}

	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](collection),
	}, nil
}

// ListVisible trả về category của caller cộng các category global (seed sẵn).
func (s *CategoryService) ListVisible(ctx context.Context, ownerID *primitive.ObjectID, sessionID string) ([]models.Category, error) {
	owner := OwnerFilter(ownerID, sessionID)
	filter := bson.M{
		"$or": []bson.M{
			owner,
			{"isGlobal": true},
		},
	}
	return s.BaseServiceMongoImpl.Find(ctx, filter, nil)
}
