package authdto

// SessionCreateInput đầu vào tạo phiên khách (CRUD quản trị).
type SessionCreateInput struct {
	SessionID string `json:"sessionId"`
}

// SessionUpdateInput đầu vào cập nhật phiên khách (CRUD quản trị).
type SessionUpdateInput struct {
	VideoCount int64 `json:"videoCount"`
}

// MigrateSessionInput đầu vào migrate dữ liệu phiên khách vào tài khoản đang đăng nhập.
type MigrateSessionInput struct {
	SessionID string `json:"sessionId" validate:"required"`
}
