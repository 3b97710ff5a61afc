package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	authmodels "knowledge_miner/internal/api/auth/models"
	authsvc "knowledge_miner/internal/api/auth/service"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/logger"
	"knowledge_miner/internal/utility"
)

// HeaderAnonymousSession là header chứa UUID phiên khách của client.
const HeaderAnonymousSession = "X-Anonymous-Session"

// AuthManager quản lý xác thực người dùng và phiên khách
type AuthManager struct {
	UserCRUD    *authsvc.UserService
	SessionCRUD *authsvc.SessionService
	Cache       *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %v", err)
	}
	newManager.SessionCRUD = sessionService

	// Khởi tạo cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// resolveUserByToken tìm user theo token.
// Ưu tiên query field "token" (token mới nhất) trước vì nó được cập nhật mỗi lần login.
// Nếu không tìm thấy, query trong array "tokens" (tokens theo hwid).
func (am *AuthManager) resolveUserByToken(ctx context.Context, token string) (*authmodels.User, error) {
	cacheKey := "auth_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		user := cached.(authmodels.User)
		return &user, nil
	}

	// Cách 1: Query field "token" (token mới nhất) - ĐÂY LÀ CÁCH CHÍNH
	query := bson.M{"token": token}
	user, err := am.UserCRUD.FindOne(ctx, query, nil)

	if err != nil {
		// Cách 2: Query trong array "tokens" với dot notation
		query = bson.M{"tokens.jwtToken": token}
		user, err = am.UserCRUD.FindOne(ctx, query, nil)

		if err != nil {
			// Cách 3: Query với $elemMatch
			query = bson.M{
				"tokens": bson.M{
					"$elemMatch": bson.M{
						"jwtToken": token,
					},
				},
			}
			user, err = am.UserCRUD.FindOne(ctx, query, nil)
		}
	}

	if err != nil {
		return nil, err
	}

	am.Cache.Set(cacheKey, user)
	return &user, nil
}

// setUserLocals lưu thông tin user vào Fiber context
func setUserLocals(c fiber.Ctx, user *authmodels.User) {
	c.Locals("user_id", user.ID.Hex())
	c.Locals("user", *user)
	c.Locals("is_admin", user.IsAdmin)
}

// AuthMiddleware middleware xác thực bắt buộc: chỉ chấp nhận user đã đăng nhập (Bearer token)
func AuthMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		user, err := authManager.resolveUserByToken(context.Background(), token)
		if err != nil {
			// Chỉ log khi không tìm thấy token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		setUserLocals(c, user)
		return c.Next()
	}
}

// AdminMiddleware yêu cầu user đang đăng nhập có quyền quản trị.
// Phải đặt SAU AuthMiddleware trong chain.
func AdminMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":    c.Path(),
				"user_id": c.Locals("user_id"),
			}).Warn("❌ [AUTH] User is not administrator")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"Yêu cầu quyền quản trị viên",
				common.StatusForbidden,
				nil,
			))
			return nil
		}
		return c.Next()
	}
}

// SessionMiddleware xác thực phiên khách: yêu cầu header X-Anonymous-Session
// chứa UUID của một session tồn tại và chưa migrate.
func SessionMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		sessionID := c.Get(HeaderAnonymousSession)
		if sessionID == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Missing X-Anonymous-Session header")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthSession,
				"Thiếu header "+HeaderAnonymousSession,
				common.StatusUnauthorized,
				nil,
			))
			return nil
		}

		session, err := authManager.SessionCRUD.FindBySessionID(context.Background(), sessionID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":       c.Path(),
				"session_id": sessionID,
			}).Warn("❌ [AUTH] Anonymous session not found")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthSession,
				"Phiên khách không tồn tại hoặc đã hết hạn",
				common.StatusUnauthorized,
				nil,
			))
			return nil
		}

		if session.MigratedToUserID != nil {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthSession,
				"Phiên khách đã được migrate vào tài khoản, vui lòng đăng nhập",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		c.Locals("session_id", session.SessionID)

		// Chạm lastSeenAt, lỗi không chặn request
		_ = authManager.SessionCRUD.Touch(context.Background(), session.SessionID)
		return c.Next()
	}
}

// IdentityMiddleware chấp nhận cả hai loại danh tính:
// user đã đăng nhập (Bearer token) hoặc phiên khách (X-Anonymous-Session).
// Route nghiệp vụ của thư viện dùng middleware này để phục vụ cả guest.
func IdentityMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				HandleErrorResponse(c, common.ErrTokenInvalid)
				return nil
			}
			user, err := authManager.resolveUserByToken(context.Background(), parts[1])
			if err != nil {
				HandleErrorResponse(c, common.ErrTokenInvalid)
				return nil
			}
			if user.IsBlock {
				HandleErrorResponse(c, common.NewError(
					common.ErrCodeAuthCredentials,
					"Tài khoản đã bị khóa: "+user.BlockNote,
					common.StatusForbidden,
					nil,
				))
				return nil
			}
			setUserLocals(c, user)
			return c.Next()
		}

		sessionID := c.Get(HeaderAnonymousSession)
		if sessionID != "" {
			session, err := authManager.SessionCRUD.FindBySessionID(context.Background(), sessionID)
			if err != nil || session.MigratedToUserID != nil {
				HandleErrorResponse(c, common.NewError(
					common.ErrCodeAuthSession,
					"Phiên khách không hợp lệ",
					common.StatusUnauthorized,
					nil,
				))
				return nil
			}
			c.Locals("session_id", session.SessionID)
			_ = authManager.SessionCRUD.Touch(context.Background(), session.SessionID)
			return c.Next()
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
		}).Warn("❌ [AUTH] No Bearer token or anonymous session provided")
		HandleErrorResponse(c, common.NewError(
			common.ErrCodeAuth,
			"Yêu cầu đăng nhập hoặc phiên khách ("+HeaderAnonymousSession+")",
			common.StatusUnauthorized,
			nil,
		))
		return nil
	}
}
