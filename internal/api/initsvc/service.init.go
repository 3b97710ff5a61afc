// Package initsvc chứa InitService dùng để khởi tạo dữ liệu ban đầu (category hệ thống, ...).
// Tách ra package riêng để tránh import cycle giữa library/service và cmd.
package initsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	librarymodels "knowledge_miner/internal/api/library/models"
	librarysvc "knowledge_miner/internal/api/library/service"
	"knowledge_miner/internal/common"
	"knowledge_miner/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitService là cấu trúc chứa các phương thức khởi tạo dữ liệu ban đầu cho hệ thống.
// Hiện tại gồm seed các category global dùng chung cho mọi thư viện.
type InitService struct {
	categoryService *librarysvc.CategoryService // Service xử lý category
}

// NewInitService tạo mới một đối tượng InitService
// Returns:
//   - *InitService: Instance mới của InitService
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewInitService() (*InitService, error) {
	categoryService, err := librarysvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}

	return &InitService{
		categoryService: categoryService,
	}, nil
}

// defaultCategory mô tả một category hệ thống seed sẵn
type defaultCategory struct {
	Name        string
	Description string
}

// defaultCategories là danh sách category global mặc định.
// IsGlobal: mọi người dùng (kể cả guest) đều thấy. IsSystem: không cho non-admin sửa/xóa.
var defaultCategories = []defaultCategory{
	{Name: "Education", Description: "Bài giảng, khóa học, hướng dẫn học tập"},
	{Name: "Technology", Description: "Lập trình, phần mềm, công nghệ"},
	{Name: "Science", Description: "Khoa học tự nhiên, nghiên cứu"},
	{Name: "Business", Description: "Kinh doanh, khởi nghiệp, tài chính"},
	{Name: "Entertainment", Description: "Giải trí, âm nhạc, phim ảnh"},
	{Name: "Other", Description: "Video chưa phân loại"},
}

// InitDefaultCategories đảm bảo các category global tồn tại.
// Idempotent: category đã có (theo tên + isGlobal) được giữ nguyên, không ghi đè
// description do admin có thể đã chỉnh.
func (s *InitService) InitDefaultCategories() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.GetAppLogger()
	created := 0
	for _, dc := range defaultCategories {
		filter := bson.M{"name": dc.Name, "isGlobal": true}
		_, err := s.categoryService.FindOne(ctx, filter, nil)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to check category %s: %w", dc.Name, err)
		}

		now := time.Now().UnixMilli()
		category := librarymodels.Category{
			Name:        dc.Name,
			Description: dc.Description,
			IsGlobal:    true,
			IsSystem:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := s.categoryService.InsertOne(ctx, category); err != nil {
			return fmt.Errorf("failed to create category %s: %w", dc.Name, err)
		}
		created++
		log.Infof("Created default category: %s", dc.Name)
	}

	if created > 0 {
		log.Infof("Seeded %d default categories", created)
	}
	return nil
}
