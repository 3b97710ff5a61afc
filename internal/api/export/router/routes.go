// Package router đăng ký các route thuộc domain export.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	exporthdl "knowledge_miner/internal/api/export/handler"
	"knowledge_miner/internal/api/middleware"
	apirouter "knowledge_miner/internal/api/router"
	"knowledge_miner/internal/client"
)

// Register đăng ký tất cả route export lên /api và /api/v1.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	exportHandler, err := exporthdl.NewExportHandler(client.GetLLMClient())
	if err != nil {
		return fmt.Errorf("failed to create export handler: %w", err)
	}

	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(api, "/export", "POST", "/", identity, exportHandler.HandleExport)
	apirouter.RegisterRouteWithMiddleware(api, "/export", "POST", "/email", identity, exportHandler.HandleExportEmail)
	apirouter.RegisterRouteWithMiddleware(api, "/export", "GET", "/deliveries", identity, exportHandler.HandleListDeliveries)

	r.RegisterCRUDRoutes(v1, "/export-delivery", exportHandler, apirouter.ReadOnlyConfig, true)
	return nil
}
