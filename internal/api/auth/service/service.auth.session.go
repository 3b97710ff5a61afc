// Package authsvc - service phiên khách (AnonymousSession).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "knowledge_miner/internal/api/auth/models"
	basesvc "knowledge_miner/internal/api/base/service"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
)

// SessionService quản lý vòng đời phiên khách: tạo, chạm (touch),
// đếm video theo hạn mức guest và dọn dẹp session không hoạt động.
type SessionService struct {
	*basesvc.BaseServiceMongoImpl[models.AnonymousSession]
}

// NewSessionService tạo mới SessionService
func NewSessionService() (*SessionService, error) {
	sessionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Sessions)
	if !exist {
		return nil, fmt.Errorf("failed to get sessions collection: %v", common.ErrNotFound)
	}

	return &SessionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.AnonymousSession](sessionCollection),
	}, nil
}

// GetOrCreate trả về session theo sessionID, tạo mới nếu chưa tồn tại.
// sessionID rỗng luôn tạo session mới với UUID do server sinh.
func (s *SessionService) GetOrCreate(ctx context.Context, sessionID string) (*models.AnonymousSession, error) {
	if sessionID != "" {
		session, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"sessionId": sessionID}, nil)
		if err == nil {
			return &session, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	now := time.Now().UnixMilli()
	newSession := models.AnonymousSession{
		SessionID:  uuid.NewString(),
		VideoCount: 0,
		LastSeenAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	session, err := s.BaseServiceMongoImpl.InsertOne(ctx, newSession)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			// UUID va chạm gần như không xảy ra, thử lại một lần
			newSession.SessionID = uuid.NewString()
			session, err = s.BaseServiceMongoImpl.InsertOne(ctx, newSession)
		}
		if err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{"session_id": session.SessionID}).Info("GetOrCreate: Tạo anonymous session mới")
	return &session, nil
}

// FindBySessionID tìm session theo UUID sessionId.
func (s *SessionService) FindBySessionID(ctx context.Context, sessionID string) (*models.AnonymousSession, error) {
	session, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"sessionId": sessionID}, nil)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch cập nhật lastSeenAt của session (gọi từ middleware mỗi request).
func (s *SessionService) Touch(ctx context.Context, sessionID string) error {
	session, err := s.FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"lastSeenAt": time.Now().UnixMilli(),
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, session.ID, updateData)
	return err
}

// CheckVideoLimit kiểm tra hạn mức video của guest session.
// Trả về ErrGuestLimitReached nếu session đã đạt giới hạn cấu hình.
func (s *SessionService) CheckVideoLimit(ctx context.Context, sessionID string) error {
	session, err := s.FindBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	limit := int64(global.MongoDB_ServerConfig.GuestVideoLimit)
	if limit > 0 && session.VideoCount >= limit {
		logrus.WithFields(logrus.Fields{"session_id": sessionID, "video_count": session.VideoCount, "limit": limit}).Warn("CheckVideoLimit: Guest session đã đạt giới hạn video")
		return common.ErrGuestLimitReached
	}
	return nil
}

// IncrementVideoCount tăng bộ đếm video của session thêm delta (có thể âm khi xóa video).
// Dùng $inc để các submit đồng thời không ghi đè lẫn nhau khi read-modify-write.
func (s *SessionService) IncrementVideoCount(ctx context.Context, sessionID string, delta int64) error {
	filter := IncrementVideoCountFilter(sessionID, delta)
	updateData := &basesvc.UpdateData{
		Inc: map[string]interface{}{"videoCount": delta},
	}
	_, err := s.BaseServiceMongoImpl.UpdateOne(ctx, filter, updateData, nil)
	if delta < 0 && errors.Is(err, common.ErrNotFound) {
		// Bộ đếm đã ở 0, không trừ thêm để không âm
		return nil
	}
	return err
}

// IncrementVideoCountFilter dựng filter cho update bộ đếm: khi delta âm chỉ
// match session còn đủ videoCount để trừ, giữ bộ đếm không bao giờ âm.
func IncrementVideoCountFilter(sessionID string, delta int64) bson.M {
	filter := bson.M{"sessionId": sessionID}
	if delta < 0 {
		filter["videoCount"] = bson.M{"$gte": -delta}
	}
	return filter
}

// CleanupInactive xóa các session không hoạt động quá ttlDays và chưa migrate,
// kèm toàn bộ dữ liệu thuộc các session đó (video, category, hội thoại, ...).
// Trả về số session đã xóa.
func (s *SessionService) CleanupInactive(ctx context.Context, ttlDays int) (int64, error) {
	if ttlDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -ttlDays).UnixMilli()
	filter := bson.M{
		"lastSeenAt":       bson.M{"$lt": cutoff},
		"migratedToUserId": bson.M{"$exists": false},
	}

	sessions, err := s.BaseServiceMongoImpl.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}
	if len(sessions) == 0 {
		return 0, nil
	}

	sessionIDs := make([]string, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.SessionID)
	}

	// Xóa dữ liệu của các session hết hạn, trực tiếp qua driver vì mỗi
	// collection có model type khác nhau
	purgeFilter := bson.M{"anonymousSessionId": bson.M{"$in": sessionIDs}}
	for _, colName := range SessionScopedCollections() {
		collection, exist := global.RegistryCollections.Get(colName)
		if !exist {
			continue
		}
		result, err := collection.DeleteMany(ctx, purgeFilter)
		if err != nil {
			return 0, common.ConvertMongoError(err)
		}
		if result.DeletedCount > 0 {
			logrus.WithFields(logrus.Fields{"collection": colName, "deleted": result.DeletedCount}).Info("CleanupInactive: Đã xóa dữ liệu của session hết hạn")
		}
	}

	deleted, err := s.BaseServiceMongoImpl.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logrus.WithFields(logrus.Fields{"deleted": deleted, "ttl_days": ttlDays}).Info("CleanupInactive: Đã dọn dẹp anonymous session không hoạt động")
	}
	return deleted, nil
}
