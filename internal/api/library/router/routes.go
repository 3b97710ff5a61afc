// Package router đăng ký các route thuộc domain library: Video, Category, Collection.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	libraryhdl "knowledge_miner/internal/api/library/handler"
	"knowledge_miner/internal/api/middleware"
	apirouter "knowledge_miner/internal/api/router"
)

// Register đăng ký tất cả route library lên /api và /api/v1.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	if err := registerVideoRoutes(api); err != nil {
		return err
	}
	if err := registerCategoryRoutes(api); err != nil {
		return err
	}
	if err := registerCollectionRoutes(api); err != nil {
		return err
	}
	if err := registerManagementRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerVideoRoutes(router fiber.Router) error {
	videoHandler, err := libraryhdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("failed to create video handler: %w", err)
	}

	// Mọi route thư viện chấp nhận cả user lẫn phiên khách
	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "POST", "/", identity, videoHandler.HandleSubmit)
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "GET", "/", identity, videoHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "GET", "/:id", identity, videoHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "PATCH", "/:id", identity, videoHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "DELETE", "/:id", identity, videoHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(router, "/videos", "POST", "/:id/reprocess", identity, videoHandler.HandleReprocess)
	return nil
}

func registerCategoryRoutes(router fiber.Router) error {
	categoryHandler, err := libraryhdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("failed to create category handler: %w", err)
	}

	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(router, "/categories", "GET", "/", identity, categoryHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/categories", "POST", "/", identity, categoryHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(router, "/categories", "PATCH", "/:id", identity, categoryHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(router, "/categories", "DELETE", "/:id", identity, categoryHandler.HandleDelete)
	return nil
}

func registerCollectionRoutes(router fiber.Router) error {
	collectionHandler, err := libraryhdl.NewCollectionHandler()
	if err != nil {
		return fmt.Errorf("failed to create collection handler: %w", err)
	}

	identity := []fiber.Handler{middleware.IdentityMiddleware()}
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "GET", "/", identity, collectionHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "POST", "/", identity, collectionHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "GET", "/:id", identity, collectionHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "PATCH", "/:id", identity, collectionHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "DELETE", "/:id", identity, collectionHandler.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "POST", "/:id/videos/:videoId", identity, collectionHandler.HandleAddVideo)
	apirouter.RegisterRouteWithMiddleware(router, "/collections", "DELETE", "/:id/videos/:videoId", identity, collectionHandler.HandleRemoveVideo)
	return nil
}

func registerManagementRoutes(v1 fiber.Router, r *apirouter.Router) error {
	videoHandler, err := libraryhdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("failed to create video handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/video", videoHandler, apirouter.ReadWriteConfig, true)

	categoryHandler, err := libraryhdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("failed to create category handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/category", categoryHandler, apirouter.ReadWriteConfig, true)

	collectionHandler, err := libraryhdl.NewCollectionHandler()
	if err != nil {
		return fmt.Errorf("failed to create collection handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/collection", collectionHandler, apirouter.ReadWriteConfig, true)

	itemHandler, err := libraryhdl.NewCollectionItemHandler()
	if err != nil {
		return fmt.Errorf("failed to create collection item handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/collection-item", itemHandler, apirouter.ReadWriteConfig, true)
	return nil
}
