package service

import (
	"context"
	"fmt"
	"io"
	"time"

	basesvc "knowledge_miner/internal/api/base/service"
	exportdto "knowledge_miner/internal/api/export/dto"
	models "knowledge_miner/internal/api/export/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	qasvc "knowledge_miner/internal/api/qa/service"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/gomail.v2"
)

// ExportService xuất dữ liệu thư viện và ghi lại lịch sử export
type ExportService struct {
	*basesvc.BaseServiceMongoImpl[models.ExportDelivery]
	videoService        *librarysvc.VideoService
	conversationService *qasvc.ConversationService
}

// NewExportService tạo mới ExportService
func NewExportService(conversationService *qasvc.ConversationService) (*ExportService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ExportDeliveries)
	if !exist {
		return nil, fmt.Errorf("failed to get export_deliveries collection: %v", common.ErrNotFound)
	}
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	return &ExportService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ExportDelivery](collection),
		videoService:         videoService,
		conversationService:  conversationService,
	}, nil
}

// buildBundle nạp các video được yêu cầu (trong phạm vi thư viện của caller)
// và dữ liệu phụ, trả về bundle sẵn sàng render.
func (s *ExportService) buildBundle(ctx context.Context, input *exportdto.ExportInput, ownerID *primitive.ObjectID, sessionID string) (*ExportBundle, []primitive.ObjectID, error) {
	videoIDs := make([]primitive.ObjectID, 0, len(input.VideoIDs))
	for _, hex := range input.VideoIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("videoId '%s' không hợp lệ", hex), common.StatusBadRequest, err)
		}
		videoIDs = append(videoIDs, id)
	}

	filter := librarysvc.OwnerFilter(ownerID, sessionID)
	filter["_id"] = bson.M{"$in": videoIDs}
	videos, err := s.videoService.Find(ctx, filter, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(videos) == 0 {
		return nil, nil, common.NewError(common.ErrCodeDatabaseQuery, "Không tìm thấy video nào trong thư viện để export", common.StatusNotFound, nil)
	}

	bundle := &ExportBundle{
		GeneratedAt:  time.Now(),
		IncludeNotes: input.IncludeNotes,
		IncludeQA:    input.IncludeQA,
		Videos:       make([]VideoExport, 0, len(videos)),
	}
	for i := range videos {
		if !input.IncludeNotes {
			videos[i].Notes = ""
		}
		ve := VideoExport{Video: videos[i]}
		if input.IncludeQA {
			conversations, err := s.loadConversations(ctx, videos[i].ID)
			if err != nil {
				return nil, nil, err
			}
			ve.Conversations = conversations
		}
		bundle.Videos = append(bundle.Videos, ve)
	}
	return bundle, videoIDs, nil
}

// loadConversations nạp hội thoại và message của một video cho export
func (s *ExportService) loadConversations(ctx context.Context, videoID primitive.ObjectID) ([]ConversationExport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	conversations, err := s.conversationService.Find(ctx, bson.M{"videoId": videoID}, opts)
	if err != nil {
		return nil, err
	}
	result := make([]ConversationExport, 0, len(conversations))
	for _, conv := range conversations {
		messages, err := s.conversationService.MessageService().Find(ctx, bson.M{"conversationId": conv.ID}, opts)
		if err != nil {
			return nil, err
		}
		result = append(result, ConversationExport{Title: conv.Title, Messages: messages})
	}
	return result, nil
}

// recordDelivery ghi lịch sử export, lỗi chỉ log chứ không chặn kết quả
func (s *ExportService) recordDelivery(ctx context.Context, delivery models.ExportDelivery) {
	if _, err := s.InsertOne(ctx, delivery); err != nil {
		logrus.WithFields(logrus.Fields{"channel": delivery.Channel, "error": err.Error()}).Warn("Export: Không ghi được lịch sử export")
	}
}

// Export render nội dung export để caller tải về
func (s *ExportService) Export(ctx context.Context, input *exportdto.ExportInput, ownerID *primitive.ObjectID, sessionID string) (*RenderedExport, error) {
	bundle, videoIDs, err := s.buildBundle(ctx, input, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	rendered, err := Render(bundle, input.Format)
	if err != nil {
		return nil, err
	}

	delivery := models.ExportDelivery{
		VideoIDs:     videoIDs,
		Format:       input.Format,
		Channel:      models.ExportChannelDownload,
		Filename:     rendered.Filename,
		IncludeNotes: input.IncludeNotes,
		IncludeQA:    input.IncludeQA,
		Status:       models.ExportStatusGenerated,
		OwnerID:      ownerID,
	}
	if ownerID == nil {
		delivery.AnonymousSessionID = sessionID
	}
	s.recordDelivery(ctx, delivery)

	logrus.WithFields(logrus.Fields{"format": input.Format, "videos": len(bundle.Videos)}).Info("Export: Đã tạo export tải về")
	return rendered, nil
}

// ExportEmail render nội dung export rồi gửi đến địa chỉ nhận qua SMTP.
// Kết quả gửi (thành công hay thất bại) đều được ghi vào lịch sử.
func (s *ExportService) ExportEmail(ctx context.Context, input *exportdto.ExportEmailInput, ownerID *primitive.ObjectID, sessionID string) (*models.ExportDelivery, error) {
	cfg := global.MongoDB_ServerConfig
	if cfg.SMTPHost == "" {
		return nil, common.NewError(common.ErrCodeServiceEmail, "Gửi email chưa được cấu hình", common.StatusServiceUnavailable, nil)
	}

	bundle, videoIDs, err := s.buildBundle(ctx, &input.ExportInput, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	rendered, err := Render(bundle, input.Format)
	if err != nil {
		return nil, err
	}

	delivery := models.ExportDelivery{
		VideoIDs:     videoIDs,
		Format:       input.Format,
		Channel:      models.ExportChannelEmail,
		Recipient:    input.Recipient,
		Filename:     rendered.Filename,
		IncludeNotes: input.IncludeNotes,
		IncludeQA:    input.IncludeQA,
		Status:       models.ExportStatusSent,
		OwnerID:      ownerID,
	}
	if ownerID == nil {
		delivery.AnonymousSessionID = sessionID
	}

	if err := sendExportMail(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, input.Recipient, rendered); err != nil {
		logrus.WithFields(logrus.Fields{"recipient": input.Recipient, "error": err.Error()}).Error("Export: Gửi email thất bại")
		delivery.Status = models.ExportStatusFailed
		delivery.Error = err.Error()
		s.recordDelivery(ctx, delivery)
		return nil, common.NewError(common.ErrCodeServiceEmail, "Không thể gửi email export", common.StatusBadGateway, err)
	}

	created, err := s.InsertOne(ctx, delivery)
	if err != nil {
		logrus.WithFields(logrus.Fields{"recipient": input.Recipient, "error": err.Error()}).Warn("Export: Không ghi được lịch sử export")
		return &delivery, nil
	}

	logrus.WithFields(logrus.Fields{"recipient": input.Recipient, "format": input.Format}).Info("Export: Đã gửi export qua email")
	return &created, nil
}

// sendExportMail gửi nội dung export dưới dạng attachment
func sendExportMail(host string, port int, user, password, from, recipient string, rendered *RenderedExport) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Export thư viện video của bạn")
	msg.SetBody("text/plain", "File export thư viện video được đính kèm trong email này.")
	msg.Attach(rendered.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(rendered.Content)
		return err
	}))

	dialer := gomail.NewDialer(host, port, user, password)
	return dialer.DialAndSend(msg)
}
