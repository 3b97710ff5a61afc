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

// ChatMessage là một lượt hội thoại gửi lên LLM
type ChatMessage struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

// LLMClient gọi dịch vụ LLM (chat completion) cho Q&A và tóm tắt
type LLMClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewLLMClient tạo client từ config
func NewLLMClient(cfg *config.Configuration) *LLMClient {
	return &LLMClient{
		baseURL:    cfg.LLMBaseURL,
		apiKey:     cfg.LLMAPIKey,
		model:      cfg.LLMModel,
		httpClient: &http.Client{Timeout: time.Duration(cfg.ClientTimeoutSec) * time.Second},
	}
}

// Complete gửi hội thoại lên LLM và trả về câu trả lời của assistant
func (c *LLMClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	log := logger.GetAppLogger()

	payload := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", common.NewError(common.ErrCodeServiceLLM, "Không thể tạo request LLM", common.StatusInternalServerError, err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", common.NewError(common.ErrCodeServiceLLM, "Không thể tạo request LLM", common.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"model": c.model,
			"url":   url,
		}).Error("🤖 [LLM] Lỗi khi gọi dịch vụ LLM")
		return "", common.ErrLLMUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"model":      c.model,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [LLM] LLM trả về lỗi")
		return "", common.NewError(common.ErrCodeServiceLLM, fmt.Sprintf("LLM trả về status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	// Response theo cấu trúc chat completion: choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", common.NewError(common.ErrCodeServiceLLM, "Không thể đọc response từ LLM", common.StatusBadGateway, err)
	}
	if len(result.Choices) == 0 {
		return "", common.NewError(common.ErrCodeServiceLLM, "LLM không trả về câu trả lời nào", common.StatusBadGateway, nil)
	}
	return result.Choices[0].Message.Content, nil
}
