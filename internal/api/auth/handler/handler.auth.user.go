package authhdl

import (
	"fmt"

	authdto "knowledge_miner/internal/api/auth/dto"
	models "knowledge_miner/internal/api/auth/models"
	authsvc "knowledge_miner/internal/api/auth/service"
	basehdl "knowledge_miner/internal/api/base/handler"
	basesvc "knowledge_miner/internal/api/base/service"
	"knowledge_miner/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserChangeInfoInput]
	userService      *authsvc.UserService
	migrationService *authsvc.MigrationService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	migrationService, err := authsvc.NewMigrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create migration service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserCreateInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler:      baseHandler,
		userService:      userService,
		migrationService: migrationService,
	}, nil
}

// scrubUser xóa các field nhạy cảm trước khi trả về client
func scrubUser(user *models.User) {
	user.Password = ""
	user.Salt = ""
	user.Tokens = nil
}

// HandleRegister đăng ký tài khoản bằng email + mật khẩu.
// Nếu input có sessionId, dữ liệu của phiên khách được migrate vào
// tài khoản mới ngay sau khi đăng ký (inline, một lần duy nhất).
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	var input authdto.RegisterInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user, err := h.userService.Register(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	// First user becomes admin: user đầu tiên trong hệ thống được quyền quản trị
	if madeAdmin, errAdmin := authsvc.EnsureFirstUserIsAdmin(c.Context(), user.ID); errAdmin != nil {
		logrus.WithError(errAdmin).Warn("HandleRegister: Lỗi khi kiểm tra first-user admin, không fail đăng ký")
	} else if madeAdmin {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Info("HandleRegister: User đầu tiên được gán quyền quản trị")
		user.IsAdmin = true
	}

	var migration *authsvc.MigrationResult
	if input.SessionID != "" {
		var errMigrate error
		migration, errMigrate = h.migrationService.Migrate(c.Context(), input.SessionID, user.ID)
		if errMigrate != nil {
			// Đăng ký đã thành công, lỗi migrate không rollback tài khoản
			logrus.WithFields(logrus.Fields{"session_id": input.SessionID, "user_id": user.ID.Hex(), "error": errMigrate.Error()}).Warn("HandleRegister: Migrate session thất bại")
		}
	}

	scrubUser(user)
	h.HandleResponse(c, map[string]interface{}{
		"user":      user,
		"migration": migration,
	}, nil)
	return nil
}

// HandleLogin đăng nhập bằng email + mật khẩu
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	var input authdto.LoginInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user, err := h.userService.Login(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	scrubUser(user)
	h.HandleResponse(c, user, nil)
	return nil
}

// HandleLoginWithFirebase đăng nhập bằng Firebase ID token
func (h *UserHandler) HandleLoginWithFirebase(c fiber.Ctx) error {
	var input authdto.FirebaseLoginInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	user, err := h.userService.LoginWithFirebase(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if madeAdmin, errAdmin := authsvc.EnsureFirstUserIsAdmin(c.Context(), user.ID); errAdmin != nil {
		logrus.WithError(errAdmin).Warn("HandleLoginWithFirebase: Lỗi khi kiểm tra first-user admin, không fail login")
	} else if madeAdmin {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Info("HandleLoginWithFirebase: User đầu tiên được gán quyền quản trị")
		user.IsAdmin = true
	}
	scrubUser(user)
	h.HandleResponse(c, user, nil)
	return nil
}

// HandleLogout xử lý đăng xuất người dùng
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	var input authdto.UserLogoutInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	err = h.userService.Logout(c.Context(), objID, &input)
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleGetMe trả về principal hiện tại: user đã đăng nhập hoặc guest session
func (h *UserHandler) HandleGetMe(c fiber.Ctx) error {
	if userID := c.Locals("user_id"); userID != nil {
		objID, err := primitive.ObjectIDFromHex(userID.(string))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}
		user, err := h.userService.BaseServiceMongoImpl.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		scrubUser(&user)
		h.HandleResponse(c, map[string]interface{}{
			"type": "user",
			"user": user,
		}, nil)
		return nil
	}

	if sessionID := c.Locals("session_id"); sessionID != nil {
		sessionService, err := authsvc.NewSessionService()
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		session, err := sessionService.FindBySessionID(c.Context(), sessionID.(string))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, map[string]interface{}{
			"type":    "guest",
			"session": session,
		}, nil)
		return nil
	}

	h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "Không xác định được người dùng hoặc phiên khách", common.StatusUnauthorized, nil))
	return nil
}

// HandleUpdateProfile cập nhật thông tin profile
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	var input authdto.UserChangeInfoInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.AvatarURL != "" {
		set["avatarUrl"] = input.AvatarURL
	}
	if len(set) == 0 {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Không có thông tin nào để cập nhật", common.StatusBadRequest, nil))
		return nil
	}
	update := &basesvc.UpdateData{Set: set}
	updatedUser, err := h.userService.BaseServiceMongoImpl.UpdateById(c.Context(), objID, update)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	scrubUser(&updatedUser)
	h.HandleResponse(c, updatedUser, nil)
	return nil
}

// HandleMigrate migrate dữ liệu phiên khách vào tài khoản đang đăng nhập (một lần duy nhất)
func (h *UserHandler) HandleMigrate(c fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
		return nil
	}
	var input authdto.MigrateSessionInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
		return nil
	}
	result, err := h.migrationService.Migrate(c.Context(), input.SessionID, objID)
	h.HandleResponse(c, result, err)
	return nil
}
