// Package librarysvc - service quản lý collection và collection item.
package librarysvc

import (
	"context"
	"fmt"

	basesvc "knowledge_miner/internal/api/base/service"
	models "knowledge_miner/internal/api/library/models"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionService là service quản lý collection trong thư viện
type CollectionService struct {
	*basesvc.BaseServiceMongoImpl[models.Collection]
	itemService  *CollectionItemService
	videoService *VideoService
}

// CollectionItemService là service quản lý join record collection-video
type CollectionItemService struct {
	*basesvc.BaseServiceMongoImpl[models.CollectionItem]
}

// NewCollectionItemService tạo mới CollectionItemService
func NewCollectionItemService() (*CollectionItemService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CollectionItems)
	if !exist {
		return nil, fmt.Errorf("failed to get library_collection_items collection: %v", common.ErrNotFound)
	}

	return &CollectionItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CollectionItem](collection),
	}, nil
}

// NewCollectionService tạo mới CollectionService
func NewCollectionService() (*CollectionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Collections)
	if !exist {
		return nil, fmt.Errorf("failed to get library_collections collection: %v", common.ErrNotFound)
	}
	itemService, err := NewCollectionItemService()
	if err != nil {
		return nil, err
	}
	videoService, err := NewVideoService()
	if err != nil {
		return nil, err
	}

	return &CollectionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Collection](collection),
		itemService:          itemService,
		videoService:         videoService,
	}, nil
}

// AddVideo gắn một video vào collection. Cả hai phải tồn tại và thuộc
// cùng chủ sở hữu với caller; gắn trùng bị từ chối là duplicate.
func (s *CollectionService) AddVideo(ctx context.Context, collectionID, videoID primitive.ObjectID, ownerID *primitive.ObjectID, sessionID string) (*models.CollectionItem, error) {
	collection, err := s.BaseServiceMongoImpl.FindOneById(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	video, err := s.videoService.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}

	dupFilter := bson.M{"collectionId": collectionID, "videoId": videoID}
	if exists, err := s.itemService.DocumentExists(ctx, dupFilter); err != nil {
		return nil, err
	} else if exists {
		return nil, common.NewError(common.ErrCodeDatabaseQuery, "Video đã có trong collection này", common.StatusConflict, nil)
	}

	item := models.CollectionItem{
		CollectionID:       collection.ID,
		VideoID:            video.ID,
		OwnerID:            ownerID,
		AnonymousSessionID: sessionID,
	}
	if ownerID != nil {
		item.AnonymousSessionID = ""
	}
	created, err := s.itemService.InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"collection_id": collectionID.Hex(), "video_id": videoID.Hex()}).Info("AddVideo: Đã gắn video vào collection")
	return &created, nil
}

// RemoveVideo gỡ một video khỏi collection.
func (s *CollectionService) RemoveVideo(ctx context.Context, collectionID, videoID primitive.ObjectID) error {
	filter := bson.M{"collectionId": collectionID, "videoId": videoID}
	return s.itemService.DeleteOne(ctx, filter)
}

// ListVideos trả về danh sách video trong một collection.
func (s *CollectionService) ListVideos(ctx context.Context, collectionID primitive.ObjectID) ([]models.Video, error) {
	items, err := s.itemService.Find(ctx, bson.M{"collectionId": collectionID}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.Video{}, nil
	}
	videoIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		videoIDs = append(videoIDs, item.VideoID)
	}
	return s.videoService.FindManyByIds(ctx, videoIDs)
}

// ItemService trả về service quản lý collection item (dùng cho CRUD quản trị).
func (s *CollectionService) ItemService() *CollectionItemService {
	return s.itemService
}
