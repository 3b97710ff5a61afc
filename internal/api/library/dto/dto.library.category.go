package librarydto

// CategoryCreateInput dữ liệu đầu vào khi tạo category
type CategoryCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty"`
}

// CategoryUpdateInput dữ liệu đầu vào khi cập nhật category
type CategoryUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty"`
}
