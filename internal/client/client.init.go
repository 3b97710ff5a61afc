package client

import (
	"sync"

	"knowledge_miner/internal/global"
)

var (
	scraperClient *ScraperClient
	vectorClient  *VectorClient
	llmClient     *LLMClient
	clientOnce    sync.Once
)

// initClients khởi tạo các client từ config chung. Gọi sau khi config đã load.
func initClients() {
	cfg := global.MongoDB_ServerConfig
	scraperClient = NewScraperClient(cfg)
	vectorClient = NewVectorClient(cfg)
	llmClient = NewLLMClient(cfg)
}

// GetScraperClient trả về scraper client dùng chung
func GetScraperClient() *ScraperClient {
	clientOnce.Do(initClients)
	return scraperClient
}

// GetVectorClient trả về vector client dùng chung
func GetVectorClient() *VectorClient {
	clientOnce.Do(initClients)
	return vectorClient
}

// GetLLMClient trả về LLM client dùng chung
func GetLLMClient() *LLMClient {
	clientOnce.Do(initClients)
	return llmClient
}
