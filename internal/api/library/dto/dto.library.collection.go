package librarydto

// CollectionCreateInput dữ liệu đầu vào khi tạo collection
type CollectionCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty"`
}

// CollectionUpdateInput dữ liệu đầu vào khi cập nhật collection
type CollectionUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty"`
}

// CollectionItemCreateInput dữ liệu đầu vào khi gắn video vào collection (CRUD quản trị)
type CollectionItemCreateInput struct {
	CollectionID string `json:"collectionId" validate:"required" transform:"str_objectid"`
	VideoID      string `json:"videoId" validate:"required" transform:"str_objectid"`
}

// CollectionItemUpdateInput dữ liệu đầu vào khi cập nhật collection item (CRUD quản trị)
type CollectionItemUpdateInput struct {
	CollectionID string `json:"collectionId,omitempty" transform:"str_objectid,optional"`
	VideoID      string `json:"videoId,omitempty" transform:"str_objectid,optional"`
}
