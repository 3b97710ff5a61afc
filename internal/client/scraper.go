// Package client chứa các HTTP client gọi dịch vụ bên ngoài: scraper, vector search, LLM.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"knowledge_miner/config"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/logger"
)

// ScraperClient gọi dịch vụ trích xuất metadata và transcript của video YouTube
type ScraperClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewScraperClient tạo client từ config
func NewScraperClient(cfg *config.Configuration) *ScraperClient {
	return &ScraperClient{
		baseURL:    cfg.ScraperBaseURL,
		apiKey:     cfg.ScraperAPIKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ClientTimeoutSec) * time.Second},
	}
}

// Extract gọi scraper lấy metadata + transcript cho một video.
// Kết quả trả về ở dạng map thô, các field được map vào model qua extract tag.
func (c *ScraperClient) Extract(ctx context.Context, youtubeID string) (map[string]interface{}, error) {
	log := logger.GetAppLogger()

	payload := map[string]interface{}{
		"videoId": youtubeID,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceScraper, "Không thể tạo request scraper", common.StatusInternalServerError, err)
	}

	url := c.baseURL + "/extract"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceScraper, "Không thể tạo request scraper", common.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"youtubeId": youtubeID,
			"url":       url,
		}).Error("🎬 [SCRAPER] Lỗi khi gọi dịch vụ scraper")
		return nil, common.ErrScraperUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"youtubeId":  youtubeID,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🎬 [SCRAPER] Scraper trả về lỗi")
		if resp.StatusCode == http.StatusNotFound {
			return nil, common.NewError(common.ErrCodeServiceScraper, "Video không tồn tại hoặc không truy cập được", common.StatusGone, nil)
		}
		return nil, common.NewError(common.ErrCodeServiceScraper, fmt.Sprintf("Scraper trả về status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, common.NewError(common.ErrCodeServiceScraper, "Không thể đọc response từ scraper", common.StatusBadGateway, err)
	}

	log.WithFields(map[string]interface{}{
		"youtubeId": youtubeID,
	}).Info("🎬 [SCRAPER] Trích xuất video thành công")
	return result, nil
}
