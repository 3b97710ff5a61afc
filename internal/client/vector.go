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

// VectorHit là một kết quả semantic search từ dịch vụ vector
type VectorHit struct {
	VideoID string  `json:"videoId"` // ID video trong thư viện (hex string)
	Score   float64 `json:"score"`   // Độ tương đồng ngữ nghĩa
	Snippet string  `json:"snippet"` // Đoạn văn bản khớp nhất
}

// VectorClient gọi dịch vụ semantic search. Optional: khi không cấu hình,
// search rơi về chế độ text với meta.fallback = true.
type VectorClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewVectorClient tạo client từ config
func NewVectorClient(cfg *config.Configuration) *VectorClient {
	return &VectorClient{
		baseURL:    cfg.VectorBaseURL,
		apiKey:     cfg.VectorAPIKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ClientTimeoutSec) * time.Second},
	}
}

// Enabled cho biết dịch vụ vector có được cấu hình hay không
func (c *VectorClient) Enabled() bool {
	return c.baseURL != ""
}

// Search tìm kiếm ngữ nghĩa trong phạm vi các video của caller
func (c *VectorClient) Search(ctx context.Context, query string, videoIDs []string, limit int) ([]VectorHit, error) {
	if !c.Enabled() {
		return nil, common.ErrVectorUnavailable
	}
	log := logger.GetAppLogger()

	payload := map[string]interface{}{
		"query":    query,
		"videoIds": videoIDs,
		"limit":    limit,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceVector, "Không thể tạo request vector search", common.StatusInternalServerError, err)
	}

	url := c.baseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceVector, "Không thể tạo request vector search", common.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"url": url,
		}).Warn("🔍 [VECTOR] Lỗi khi gọi dịch vụ vector search")
		return nil, common.ErrVectorUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Warn("🔍 [VECTOR] Vector search trả về lỗi")
		return nil, common.NewError(common.ErrCodeServiceVector, fmt.Sprintf("Vector search trả về status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	var result struct {
		Hits []VectorHit `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, common.NewError(common.ErrCodeServiceVector, "Không thể đọc response từ vector search", common.StatusBadGateway, err)
	}
	return result.Hits, nil
}
