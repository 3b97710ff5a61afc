// Package librarysvc - service quản lý video trong thư viện.
package librarysvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	authsvc "knowledge_miner/internal/api/auth/service"
	basemodels "knowledge_miner/internal/api/base/models"
	basesvc "knowledge_miner/internal/api/base/service"
	librarydto "knowledge_miner/internal/api/library/dto"
	models "knowledge_miner/internal/api/library/models"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"
	"knowledge_miner/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VideoService là service quản lý video trong thư viện
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	sessionService *authsvc.SessionService
}

// NewVideoService tạo mới VideoService
func NewVideoService() (*VideoService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get library_videos collection: %v", common.ErrNotFound)
	}
	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return nil, err
	}

	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Video](collection),
		sessionService:       sessionService,
	}, nil
}

// OwnerFilter trả về filter theo chủ sở hữu (user hoặc phiên khách)
func OwnerFilter(ownerID *primitive.ObjectID, sessionID string) bson.M {
	if ownerID != nil {
		return bson.M{"ownerId": *ownerID}
	}
	return bson.M{"anonymousSessionId": sessionID}
}

// Submit nhận một URL YouTube, validate và tạo video ở trạng thái pending.
// Guest bị chặn khi đã đạt hạn mức video. Trùng youtubeId trong cùng
// một thư viện bị từ chối là duplicate.
func (s *VideoService) Submit(ctx context.Context, input *librarydto.VideoSubmitInput, ownerID *primitive.ObjectID, sessionID string) (*models.Video, error) {
	youtubeID, err := utility.ExtractYouTubeID(input.URL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "URL YouTube không hợp lệ: "+err.Error(), common.StatusBadRequest, err)
	}

	// Hạn mức guest: chỉ áp cho phiên khách, không áp cho user đã đăng nhập
	if ownerID == nil {
		if err := s.sessionService.CheckVideoLimit(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	// Trùng youtubeId trong cùng thư viện
	dupFilter := OwnerFilter(ownerID, sessionID)
	dupFilter["youtubeId"] = youtubeID
	if exists, err := s.BaseServiceMongoImpl.DocumentExists(ctx, dupFilter); err != nil {
		return nil, err
	} else if exists {
		return nil, common.ErrVideoDuplicate
	}

	now := time.Now().UnixMilli()
	video := models.Video{
		YouTubeID:    youtubeID,
		URL:          utility.YouTubeWatchURL(youtubeID),
		ThumbnailURL: utility.YouTubeThumbnailURL(youtubeID),
		Notes:        input.Notes,
		Status:       models.VideoStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "categoryId không hợp lệ", common.StatusBadRequest, err)
		}
		video.CategoryID = &categoryID
	}
	if ownerID != nil {
		video.OwnerID = ownerID
	} else {
		video.AnonymousSessionID = sessionID
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, video)
	if err != nil {
		return nil, err
	}

	// Tăng bộ đếm video của phiên khách sau khi insert thành công
	if ownerID == nil {
		if err := s.sessionService.IncrementVideoCount(ctx, sessionID, 1); err != nil {
			logrus.WithFields(logrus.Fields{"session_id": sessionID, "error": err.Error()}).Warn("Submit: Không tăng được videoCount của session")
		}
	}

	logrus.WithFields(logrus.Fields{"video_id": created.ID.Hex(), "youtube_id": youtubeID}).Info("Submit: Đã nhận video, chờ xử lý")
	return &created, nil
}

// List trả về thư viện của caller với filter, text query, sort và phân trang.
func (s *VideoService) List(ctx context.Context, query *librarydto.VideoListQuery, ownerID *primitive.ObjectID, sessionID string) (*basemodels.PaginateResult[models.Video], error) {
	filter := OwnerFilter(ownerID, sessionID)

	if query.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(query.CategoryID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "categoryId không hợp lệ", common.StatusBadRequest, err)
		}
		filter["categoryId"] = categoryID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Favorite == "true" {
		filter["isFavorite"] = true
	} else if query.Favorite == "false" {
		filter["isFavorite"] = false
	}
	if query.Rating > 0 {
		filter["rating"] = bson.M{"$gte": query.Rating}
	}
	if query.Q != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(query.Q), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": regex},
			{"channel": regex},
			{"notes": regex},
		}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().SetSort(parseVideoSort(query.Sort))
	return s.BaseServiceMongoImpl.FindWithPagination(ctx, filter, page, limit, opts)
}

// parseVideoSort chuyển tham số sort thành bson.D. Tiền tố "-" = giảm dần.
func parseVideoSort(sort string) bson.D {
	field := "createdAt"
	order := -1
	if sort != "" {
		s := sort
		order = 1
		if s[0] == '-' {
			order = -1
			s = s[1:]
		}
		switch s {
		case "createdAt", "title", "rating", "duration", "publishedAt":
			field = s
		}
	}
	return bson.D{{Key: field, Value: order}}
}

// Reprocess đưa một video failed trở lại hàng đợi xử lý.
func (s *VideoService) Reprocess(ctx context.Context, videoID primitive.ObjectID) (*models.Video, error) {
	video, err := s.BaseServiceMongoImpl.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Status != models.VideoStatusFailed {
		return nil, common.NewError(common.ErrCodeBusinessState, fmt.Sprintf("Chỉ video failed mới reprocess được (trạng thái hiện tại: %s)", video.Status), common.StatusConflict, nil)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":   models.VideoStatusPending,
			"attempts": 0,
		},
		Unset: map[string]interface{}{
			"processingError": "",
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, videoID, updateData)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"video_id": videoID.Hex()}).Info("Reprocess: Đã đưa video trở lại hàng đợi")
	return &updated, nil
}

// DeleteVideo xóa video và cascade xóa QA conversation/message của nó.
// Relationship tag chặn xóa khi còn collection item tham chiếu.
func (s *VideoService) DeleteVideo(ctx context.Context, videoID primitive.ObjectID) error {
	video, err := s.BaseServiceMongoImpl.FindOneById(ctx, videoID)
	if err != nil {
		return err
	}

	// Xóa video trước (relationship tag validate collection items tại đây),
	// chỉ cascade QA khi video xóa thành công.
	if err := s.BaseServiceMongoImpl.DeleteById(ctx, videoID); err != nil {
		return err
	}

	if err := s.cascadeDeleteConversations(ctx, videoID); err != nil {
		logrus.WithFields(logrus.Fields{"video_id": videoID.Hex(), "error": err.Error()}).Error("DeleteVideo: Lỗi cascade xóa QA conversation")
	}

	// Giảm bộ đếm video của phiên khách
	if video.AnonymousSessionID != "" {
		if err := s.sessionService.IncrementVideoCount(ctx, video.AnonymousSessionID, -1); err != nil {
			logrus.WithFields(logrus.Fields{"session_id": video.AnonymousSessionID, "error": err.Error()}).Warn("DeleteVideo: Không giảm được videoCount của session")
		}
	}
	return nil
}

// cascadeDeleteConversations xóa mọi conversation và message gắn với video.
// Cập nhật trực tiếp qua driver vì qa là domain khác (tránh import cycle).
func (s *VideoService) cascadeDeleteConversations(ctx context.Context, videoID primitive.ObjectID) error {
	convCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.QaConversations)
	if !exist {
		return nil
	}
	msgCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.QaMessages)
	if !exist {
		return nil
	}

	cursor, err := convCollection.Find(ctx, bson.M{"videoId": videoID})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	var conversations []bson.M
	if err := cursor.All(ctx, &conversations); err != nil {
		return common.ConvertMongoError(err)
	}
	if len(conversations) == 0 {
		return nil
	}

	conversationIDs := make([]primitive.ObjectID, 0, len(conversations))
	for _, conv := range conversations {
		if id, ok := conv["_id"].(primitive.ObjectID); ok {
			conversationIDs = append(conversationIDs, id)
		}
	}

	if _, err := msgCollection.DeleteMany(ctx, bson.M{"conversationId": bson.M{"$in": conversationIDs}}); err != nil {
		return common.ConvertMongoError(err)
	}
	if _, err := convCollection.DeleteMany(ctx, bson.M{"videoId": videoID}); err != nil {
		return common.ConvertMongoError(err)
	}

	logrus.WithFields(logrus.Fields{"video_id": videoID.Hex(), "conversations": len(conversationIDs)}).Info("DeleteVideo: Đã cascade xóa QA conversation")
	return nil
}

// CompleteProcessing lưu payload scraper vào video và chuyển trạng thái ready.
// Các field typed (title, channel, duration, transcript, ...) được extract
// từ ScraperData qua tag extract.
func (s *VideoService) CompleteProcessing(ctx context.Context, videoID primitive.ObjectID, scraperData map[string]interface{}) (*models.Video, error) {
	video, err := s.BaseServiceMongoImpl.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}

	video.ScraperData = scraperData
	if err := utility.ExtractDataIfExists(&video); err != nil {
		return nil, common.NewError(common.ErrCodeServiceScraper, "Payload scraper không đúng định dạng: "+err.Error(), common.StatusInternalServerError, err)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"scraperData":        video.ScraperData,
			"title":              video.Title,
			"channel":            video.Channel,
			"description":        video.Description,
			"thumbnailUrl":       video.ThumbnailURL,
			"duration":           video.Duration,
			"publishedAt":        video.PublishedAt,
			"transcript":         video.Transcript,
			"transcriptLanguage": video.TranscriptLanguage,
			"status":             models.VideoStatusReady,
		},
		Unset: map[string]interface{}{
			"processingError": "",
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, videoID, updateData)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FailProcessing đánh dấu một lần thử thất bại. Khi vượt maxAttempts video
// chuyển sang failed kèm processingError, ngược lại quay về pending để retry.
func (s *VideoService) FailProcessing(ctx context.Context, videoID primitive.ObjectID, processErr error, maxAttempts int) error {
	video, err := s.BaseServiceMongoImpl.FindOneById(ctx, videoID)
	if err != nil {
		return err
	}

	attempts := video.Attempts + 1
	status := models.VideoStatusPending
	if attempts >= maxAttempts {
		status = models.VideoStatusFailed
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"attempts":        attempts,
			"status":          status,
			"processingError": processErr.Error(),
		},
	}
	if _, err := s.BaseServiceMongoImpl.UpdateById(ctx, videoID, updateData); err != nil {
		return err
	}

	if status == models.VideoStatusFailed {
		logrus.WithFields(logrus.Fields{"video_id": videoID.Hex(), "attempts": attempts, "error": processErr.Error()}).Error("FailProcessing: Video chuyển sang failed")
	}
	return nil
}

// ClaimPending atomically chuyển một video pending sang processing và trả về
// nó cho worker. Trả về ErrNotFound khi hàng đợi rỗng.
func (s *VideoService) ClaimPending(ctx context.Context) (*models.Video, error) {
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetReturnDocument(options.After)
	video, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx,
		bson.M{"status": models.VideoStatusPending},
		&basesvc.UpdateData{Set: map[string]interface{}{"status": models.VideoStatusProcessing}},
		opts,
	)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}
