package main

import (
	"context"

	"knowledge_miner/config"
	authmodels "knowledge_miner/internal/api/auth/models"
	exportmodels "knowledge_miner/internal/api/export/models"
	librarymodels "knowledge_miner/internal/api/library/models"
	qamodels "knowledge_miner/internal/api/qa/models"
	"knowledge_miner/internal/database"
	"knowledge_miner/internal/global"
	"knowledge_miner/internal/utility"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Auth Collections
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Sessions = "auth_sessions"
	global.MongoDB_ColNames.AuthLogs = "auth_logs"

	// Library Collections (prefix "library_" để nhất quán)
	global.MongoDB_ColNames.Videos = "library_videos"
	global.MongoDB_ColNames.Categories = "library_categories"
	global.MongoDB_ColNames.Collections = "library_collections"
	global.MongoDB_ColNames.CollectionItems = "library_collection_items"

	// QA Collections
	global.MongoDB_ColNames.QaConversations = "qa_conversations"
	global.MongoDB_ColNames.QaMessages = "qa_messages"

	// Export Collections
	global.MongoDB_ColNames.ExportDeliveries = "export_deliveries"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: youtube_url, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Sessions), authmodels.AnonymousSession{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.AuthLogs), authmodels.AuthLog{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Videos), librarymodels.Video{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Categories), librarymodels.Category{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Collections), librarymodels.Collection{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CollectionItems), librarymodels.CollectionItem{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.QaConversations), qamodels.QaConversation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.QaMessages), qamodels.QaMessage{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ExportDeliveries), exportmodels.ExportDelivery{})
}

// initFirebase khởi tạo Firebase Admin SDK (provider login, tùy chọn)
func initFirebase() {
	cfg := global.MongoDB_ServerConfig

	// Kiểm tra Firebase config có đầy đủ không
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, chỉ log warning để hệ thống vẫn chạy được
		return
	}

	logrus.Info("Firebase initialized successfully")
}
