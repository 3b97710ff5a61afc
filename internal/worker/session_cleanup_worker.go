package worker

import (
	"context"
	"time"

	authsvc "knowledge_miner/internal/api/auth/service"
	"knowledge_miner/internal/global"
	"knowledge_miner/internal/logger"
)

// SessionCleanupWorker dọn các phiên khách không hoạt động quá hạn TTL
// cùng toàn bộ dữ liệu thuộc các phiên đó. Chạy định kỳ (mặc định 6 giờ).
type SessionCleanupWorker struct {
	sessionService *authsvc.SessionService
	interval       time.Duration
	ttlDays        int
}

// NewSessionCleanupWorker tạo mới SessionCleanupWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 6 giờ)
func NewSessionCleanupWorker(interval time.Duration) (*SessionCleanupWorker, error) {
	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 6 * time.Hour
	}
	return &SessionCleanupWorker{
		sessionService: sessionService,
		interval:       interval,
		ttlDays:        global.MongoDB_ServerConfig.GuestSessionTTL,
	}, nil
}

// Start chạy worker trong vòng lặp cho đến khi ctx bị hủy.
func (w *SessionCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"ttlDays":  w.ttlDays,
	}).Info("🧹 [SESSION_CLEANUP] Starting Session Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [SESSION_CLEANUP] Session Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🧹 [SESSION_CLEANUP] Panic khi dọn session, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				deleted, err := w.sessionService.CleanupInactive(ctx, w.ttlDays)
				if err != nil {
					log.WithError(err).Error("🧹 [SESSION_CLEANUP] Lỗi dọn dẹp session")
					return
				}
				if deleted > 0 {
					log.WithFields(map[string]interface{}{
						"deleted": deleted,
					}).Info("🧹 [SESSION_CLEANUP] Đã dọn dẹp session hết hạn")
				}
			}()
		}
	}
}
