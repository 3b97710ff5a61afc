// Package router đăng ký các route thuộc domain qa.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"knowledge_miner/internal/api/middleware"
	qahdl "knowledge_miner/internal/api/qa/handler"
	apirouter "knowledge_miner/internal/api/router"
	"knowledge_miner/internal/client"
)

// Register đăng ký tất cả route qa lên /api và /api/v1.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	conversationHandler, err := qahdl.NewConversationHandler(client.GetLLMClient())
	if err != nil {
		return fmt.Errorf("failed to create conversation handler: %w", err)
	}

	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(api, "/qa/conversations", "POST", "/", identity, conversationHandler.HandleCreateConversation)
	apirouter.RegisterRouteWithMiddleware(api, "/qa/conversations", "GET", "/", identity, conversationHandler.HandleListConversations)
	apirouter.RegisterRouteWithMiddleware(api, "/qa/conversations", "GET", "/:id", identity, conversationHandler.HandleGetConversation)
	apirouter.RegisterRouteWithMiddleware(api, "/qa/conversations", "POST", "/:id/ask", identity, conversationHandler.HandleAsk)
	apirouter.RegisterRouteWithMiddleware(api, "/qa/conversations", "DELETE", "/:id", identity, conversationHandler.HandleDeleteConversation)

	return registerManagementRoutes(v1, r)
}

func registerManagementRoutes(v1 fiber.Router, r *apirouter.Router) error {
	conversationHandler, err := qahdl.NewConversationHandler(client.GetLLMClient())
	if err != nil {
		return fmt.Errorf("failed to create conversation handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/qa-conversation", conversationHandler, apirouter.ReadWriteConfig, true)

	messageHandler, err := qahdl.NewMessageHandler()
	if err != nil {
		return fmt.Errorf("failed to create message handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/qa-message", messageHandler, apirouter.ReadWriteConfig, true)
	return nil
}
