package main

import (
	"knowledge_miner/internal/api/initsvc"
	"knowledge_miner/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}

	// Seed các category global mặc định (Education, Technology, ...).
	// User đầu tiên đăng ký sẽ tự động trở thành admin (EnsureFirstUserIsAdmin
	// trong auth service), không cần seed user ở đây.
	log.Info("🔄 [INIT] Seeding default categories...")
	if err := initService.InitDefaultCategories(); err != nil {
		log.WithError(err).Error("❌ [INIT] Failed to seed default categories")
		log.Warnf("Failed to seed default categories: %v", err)
	} else {
		log.Info("✅ [INIT] Default categories seeded successfully")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
