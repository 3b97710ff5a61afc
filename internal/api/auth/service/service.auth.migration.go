// Package authsvc - service migrate dữ liệu phiên khách vào tài khoản.
package authsvc

import (
	"context"
	"fmt"
	"time"

	models "knowledge_miner/internal/api/auth/models"
	basesvc "knowledge_miner/internal/api/base/service"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationResult chứa số document đã chuyển quyền sở hữu theo từng collection.
type MigrationResult struct {
	SessionID string           `json:"sessionId"`
	UserID    string           `json:"userId"`
	Counts    map[string]int64 `json:"counts"`
	Total     int64            `json:"total"`
}

// MigrationService thực hiện migrate một lần duy nhất toàn bộ dữ liệu
// của một anonymous session sang tài khoản người dùng: set ownerId,
// unset anonymousSessionId trên mọi collection có dữ liệu thuộc session.
type MigrationService struct {
	sessionService *SessionService
	authLogService *basesvc.BaseServiceMongoImpl[models.AuthLog]
}

// NewMigrationService tạo mới MigrationService
func NewMigrationService() (*MigrationService, error) {
	sessionService, err := NewSessionService()
	if err != nil {
		return nil, err
	}
	authLogCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AuthLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get auth_logs collection: %v", common.ErrNotFound)
	}

	return &MigrationService{
		sessionService: sessionService,
		authLogService: basesvc.NewBaseServiceMongo[models.AuthLog](authLogCollection),
	}, nil
}

// SessionScopedCollections trả về danh sách collection có dữ liệu thuộc sở hữu
// của anonymous session (đánh dấu bằng field anonymousSessionId).
func SessionScopedCollections() []string {
	return []string{
		global.MongoDB_ColNames.Videos,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Collections,
		global.MongoDB_ColNames.CollectionItems,
		global.MongoDB_ColNames.QaConversations,
		global.MongoDB_ColNames.QaMessages,
		global.MongoDB_ColNames.ExportDeliveries,
	}
}

// Migrate chuyển toàn bộ dữ liệu của session sang user.
// Idempotent: session đã migrate trả về ErrAlreadyMigrated.
func (s *MigrationService) Migrate(ctx context.Context, sessionID string, userID primitive.ObjectID) (*MigrationResult, error) {
	session, err := s.sessionService.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.MigratedToUserID != nil {
		logrus.WithFields(logrus.Fields{"session_id": sessionID, "migrated_to": session.MigratedToUserID.Hex()}).Warn("Migrate: Session đã được migrate trước đó")
		return nil, common.ErrAlreadyMigrated
	}

	now := time.Now().UnixMilli()
	result := &MigrationResult{
		SessionID: sessionID,
		UserID:    userID.Hex(),
		Counts:    make(map[string]int64),
	}

	filter := bson.M{"anonymousSessionId": sessionID}
	update := bson.M{
		"$set":   bson.M{"ownerId": userID, "updatedAt": now},
		"$unset": bson.M{"anonymousSessionId": ""},
	}

	// Migrate từng collection, cập nhật trực tiếp qua driver vì mỗi collection
	// có model type khác nhau (không đi qua base service generic được).
	for _, colName := range SessionScopedCollections() {
		collection, exist := global.RegistryCollections.Get(colName)
		if !exist {
			continue
		}
		count, err := s.migrateCollection(ctx, collection, filter, update)
		if err != nil {
			logrus.WithFields(logrus.Fields{"collection": colName, "session_id": sessionID, "error": err.Error()}).Error("Migrate: Lỗi khi migrate collection")
			return nil, err
		}
		result.Counts[colName] = count
		result.Total += count
	}

	// Đánh dấu session đã migrate để chặn migrate lần hai
	sessionUpdate := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"migratedToUserId": userID,
			"migratedAt":       now,
		},
	}
	if _, err := s.sessionService.BaseServiceMongoImpl.UpdateById(ctx, session.ID, sessionUpdate); err != nil {
		return nil, err
	}

	authLog := models.AuthLog{
		UserID:    userID,
		SessionID: sessionID,
		Action:    "migrate_session",
		Describe:  fmt.Sprintf("Migrate %d document từ session %s sang user %s", result.Total, sessionID, userID.Hex()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.authLogService.InsertOne(ctx, authLog); err != nil {
		// Log migrate thất bại không chặn kết quả migrate
		logrus.WithError(err).Warn("Migrate: Không ghi được auth log")
	}

	logrus.WithFields(logrus.Fields{"session_id": sessionID, "user_id": userID.Hex(), "total": result.Total}).Info("Migrate: Migrate session thành công")
	return result, nil
}

// migrateCollection đổi chủ sở hữu toàn bộ document match filter trong một collection.
func (s *MigrationService) migrateCollection(ctx context.Context, collection *mongo.Collection, filter bson.M, update bson.M) (int64, error) {
	updateResult, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return updateResult.ModifiedCount, nil
}
