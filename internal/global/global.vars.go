package global

import (
	"knowledge_miner/config"
	"knowledge_miner/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	// Auth Collections
	Users    string // Tên collection cho người dùng
	Sessions string // Tên collection cho anonymous sessions (guest)
	AuthLogs string // Tên collection cho log các hành động auth (login, migrate, block)

	// Library Collections
	Videos          string // Tên collection cho video đã lưu
	Categories      string // Tên collection cho danh mục video
	Collections     string // Tên collection cho bộ sưu tập video
	CollectionItems string // Tên collection cho liên kết collection-video

	// QA Collections
	QaConversations string // Tên collection cho hội thoại Q&A
	QaMessages      string // Tên collection cho tin nhắn Q&A

	// Export Collections
	ExportDeliveries string // Tên collection cho lịch sử gửi export qua email

	// RBAC Collections (chưa sử dụng, tham chiếu bởi các helper kiểm tra quan hệ)
	Roles           string // Tên collection cho role
	UserRoles       string // Tên collection cho liên kết user-role
	RolePermissions string // Tên collection cho liên kết role-permission
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
