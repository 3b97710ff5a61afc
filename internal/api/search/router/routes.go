// Package router đăng ký route search.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	searchhdl "knowledge_miner/internal/api/search/handler"
	"knowledge_miner/internal/api/middleware"
	apirouter "knowledge_miner/internal/api/router"
	"knowledge_miner/internal/client"
)

// Register đăng ký route search lên /api.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	searchHandler, err := searchhdl.NewSearchHandler(client.GetVectorClient())
	if err != nil {
		return fmt.Errorf("failed to create search handler: %w", err)
	}

	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(api, "/search", "GET", "/", identity, searchHandler.HandleSearch)
	return nil
}
