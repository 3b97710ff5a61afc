// Package worker chứa các background worker: xử lý video pending và dọn phiên khách hết hạn.
package worker

import (
	"context"
	"errors"
	"time"

	"knowledge_miner/internal/api/events"
	librarymodels "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	"knowledge_miner/internal/client"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/global"
	"knowledge_miner/internal/logger"
)

// VideoProcessingWorker xử lý các video pending: claim từng video, gọi scraper
// lấy metadata + transcript rồi chuyển sang ready. Thất bại được thử lại tối đa
// maxAttempts lần trước khi đánh dấu failed.
// Worker được đánh thức ngay khi có video pending mới (qua data change event),
// ticker chỉ là lưới an toàn khi event bị rơi.
type VideoProcessingWorker struct {
	videoService  *librarysvc.VideoService
	scraperClient *client.ScraperClient
	workers       int           // Số goroutine xử lý song song
	maxAttempts   int           // Số lần thử tối đa cho một video
	pollInterval  time.Duration // Khoảng quét dự phòng khi không có event
	wake          chan struct{}
}

// NewVideoProcessingWorker tạo mới VideoProcessingWorker từ config chung.
func NewVideoProcessingWorker(scraperClient *client.ScraperClient) (*VideoProcessingWorker, error) {
	videoService, err := librarysvc.NewVideoService()
	if err != nil {
		return nil, err
	}
	cfg := global.MongoDB_ServerConfig
	workers := cfg.ProcessingWorkers
	if workers <= 0 {
		workers = 2
	}
	maxAttempts := cfg.ProcessingMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	w := &VideoProcessingWorker{
		videoService:  videoService,
		scraperClient: scraperClient,
		workers:       workers,
		maxAttempts:   maxAttempts,
		pollInterval:  30 * time.Second,
		wake:          make(chan struct{}, 1),
	}

	// Đánh thức worker khi có video pending mới được insert
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Videos {
			return
		}
		if e.Operation != events.OpInsert && e.Operation != events.OpUpdate {
			return
		}
		if events.GetStringField(e.Document, "Status") != librarymodels.VideoStatusPending {
			return
		}
		w.Wake()
	})

	return w, nil
}

// Wake đánh thức worker, không block khi đã có tín hiệu chờ sẵn
func (w *VideoProcessingWorker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Start chạy pool goroutine xử lý video cho đến khi ctx bị hủy.
func (w *VideoProcessingWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"workers":     w.workers,
		"maxAttempts": w.maxAttempts,
	}).Info("🎬 [VIDEO_PROCESSING] Starting Video Processing Worker...")

	for i := 0; i < w.workers; i++ {
		go w.runLoop(ctx, i)
	}
}

// runLoop là vòng lặp của một goroutine xử lý: chờ wake hoặc ticker, rồi
// drain toàn bộ hàng đợi pending.
func (w *VideoProcessingWorker) runLoop(ctx context.Context, workerID int) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithFields(map[string]interface{}{"workerId": workerID}).Info("🎬 [VIDEO_PROCESSING] Worker stopped")
			return
		case <-w.wake:
		case <-ticker.C:
		}
		w.drainQueue(ctx, workerID)
	}
}

// drainQueue xử lý lần lượt các video pending cho đến khi hàng đợi rỗng
func (w *VideoProcessingWorker) drainQueue(ctx context.Context, workerID int) {
	log := logger.GetAppLogger()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		video, err := w.videoService.ClaimPending(ctx)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				log.WithError(err).Error("🎬 [VIDEO_PROCESSING] Lỗi claim video pending")
			}
			return
		}
		w.safeProcess(ctx, workerID, video)
	}
}

// safeProcess bọc processOne trong recover để panic không làm chết worker
func (w *VideoProcessingWorker) safeProcess(ctx context.Context, workerID int, video *librarymodels.Video) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"workerId": workerID,
				"videoId":  video.ID.Hex(),
				"panic":    r,
			}).Error("🎬 [VIDEO_PROCESSING] Panic khi xử lý video, sẽ tiếp tục")
		}
	}()
	w.processOne(ctx, workerID, video)
}

// processOne gọi scraper cho một video đã claim và cập nhật kết quả
func (w *VideoProcessingWorker) processOne(ctx context.Context, workerID int, video *librarymodels.Video) {
	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"workerId":  workerID,
		"videoId":   video.ID.Hex(),
		"youtubeId": video.YouTubeID,
	}).Info("🎬 [VIDEO_PROCESSING] Bắt đầu xử lý video")

	scraperData, err := w.scraperClient.Extract(ctx, video.YouTubeID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"videoId":  video.ID.Hex(),
			"attempts": video.Attempts,
		}).Warn("🎬 [VIDEO_PROCESSING] Scraper thất bại")
		if failErr := w.videoService.FailProcessing(ctx, video.ID, err, w.maxAttempts); failErr != nil {
			log.WithError(failErr).Error("🎬 [VIDEO_PROCESSING] Không cập nhật được trạng thái thất bại")
		}
		return
	}

	if _, err := w.videoService.CompleteProcessing(ctx, video.ID, scraperData); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{"videoId": video.ID.Hex()}).Error("🎬 [VIDEO_PROCESSING] Không lưu được kết quả xử lý")
		if failErr := w.videoService.FailProcessing(ctx, video.ID, err, w.maxAttempts); failErr != nil {
			log.WithError(failErr).Error("🎬 [VIDEO_PROCESSING] Không cập nhật được trạng thái thất bại")
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"videoId":   video.ID.Hex(),
		"youtubeId": video.YouTubeID,
	}).Info("🎬 [VIDEO_PROCESSING] Video đã sẵn sàng")
}
