// Package router đăng ký các route thuộc domain auth: Auth, Session, Admin, System, quản lý CRUD.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "knowledge_miner/internal/api/auth/handler"
	basehdl "knowledge_miner/internal/api/base/handler"
	"knowledge_miner/internal/api/middleware"
	apirouter "knowledge_miner/internal/api/router"
)

// Register đăng ký tất cả route auth lên /api và /api/v1.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(api); err != nil {
		return err
	}
	if err := registerAuthRoutes(api); err != nil {
		return err
	}
	if err := registerAdminRoutes(api); err != nil {
		return err
	}
	if err := registerManagementRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	sessionHandler, err := authhdl.NewSessionHandler()
	if err != nil {
		return fmt.Errorf("failed to create session handler: %w", err)
	}

	// Route công khai: đăng ký, đăng nhập, tạo phiên khách
	router.Post("/auth/register", userHandler.HandleRegister)
	router.Post("/auth/login", userHandler.HandleLogin)
	router.Post("/auth/login-firebase", userHandler.HandleLoginWithFirebase)
	router.Post("/auth/session", sessionHandler.HandleGetOrCreateSession)

	// Route yêu cầu user đã đăng nhập
	authOnly := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnly}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authOnly}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/migrate", []fiber.Handler{authOnly}, userHandler.HandleMigrate)

	// /auth/me chấp nhận cả user lẫn phiên khách
	identity := middleware.IdentityMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/me", []fiber.Handler{identity}, userHandler.HandleGetMe)
	return nil
}

func registerAdminRoutes(router fiber.Router) error {
	adminHandler, err := authhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}
	adminChain := []fiber.Handler{middleware.AuthMiddleware(), middleware.AdminMiddleware()}
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/block", adminChain, adminHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/unblock", adminChain, adminHandler.HandleUnBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/set-administrator", adminChain, adminHandler.HandleSetAdministrator)
	return nil
}

func registerManagementRoutes(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/user", userHandler, apirouter.ReadOnlyConfig, true)

	sessionHandler, err := authhdl.NewSessionHandler()
	if err != nil {
		return fmt.Errorf("failed to create session handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/session", sessionHandler, apirouter.ReadWriteConfig, true)
	return nil
}
