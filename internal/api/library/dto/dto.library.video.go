package librarydto

// VideoSubmitInput dữ liệu đầu vào khi submit một URL YouTube vào thư viện
type VideoSubmitInput struct {
	URL        string `json:"url" validate:"required,youtube_url"`
	CategoryID string `json:"categoryId,omitempty" transform:"str_objectid_ptr,optional"`
	Notes      string `json:"notes,omitempty"`
}

// VideoCreateInput dữ liệu đầu vào khi tạo video qua CRUD quản trị
type VideoCreateInput struct {
	YouTubeID  string `json:"youtubeId" validate:"required"`
	URL        string `json:"url" validate:"required"`
	Title      string `json:"title,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Status     string `json:"status,omitempty" transform:"string,default=pending"`
	CategoryID string `json:"categoryId,omitempty" transform:"str_objectid_ptr,optional"`
}

// VideoUpdateInput dữ liệu đầu vào khi cập nhật video (notes, rating, favorite, category, title)
type VideoUpdateInput struct {
	Title      string `json:"title,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Rating     *int   `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	IsFavorite *bool  `json:"isFavorite,omitempty"`
	CategoryID string `json:"categoryId,omitempty" transform:"str_objectid_ptr,optional"`
}

// VideoListQuery tham số lọc danh sách video trong thư viện
type VideoListQuery struct {
	CategoryID string `query:"categoryId"`
	Status     string `query:"status"`
	Favorite   string `query:"favorite"` // "true" | "false"
	Rating     int    `query:"rating"`   // Lọc rating >= giá trị này
	Q          string `query:"q"`        // Text query trên title/channel/notes
	Sort       string `query:"sort"`     // createdAt|title|rating|duration, tiền tố "-" = giảm dần
	Page       int64  `query:"page"`
	Limit      int64  `query:"limit"`
}
