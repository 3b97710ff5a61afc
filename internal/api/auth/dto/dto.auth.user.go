package authdto

// UserCreateInput đầu vào tạo người dùng (CRUD quản trị).
type UserCreateInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// RegisterInput đầu vào đăng ký tài khoản bằng email + mật khẩu.
// SessionID (tùy chọn): nếu có, dữ liệu của phiên khách sẽ được migrate
// vào tài khoản mới ngay sau khi đăng ký thành công.
type RegisterInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Hwid      string `json:"hwid" validate:"required"`
	SessionID string `json:"sessionId"`
}

// LoginInput đầu vào đăng nhập bằng email + mật khẩu.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Hwid     string `json:"hwid" validate:"required"`
}

// FirebaseLoginInput đầu vào đăng nhập bằng Firebase ID token.
type FirebaseLoginInput struct {
	IDToken string `json:"idToken" validate:"required"`
	Hwid    string `json:"hwid" validate:"required"`
}

// UserLogoutInput đầu vào đăng xuất người dùng.
type UserLogoutInput struct {
	Hwid string `json:"hwid" validate:"required"`
}

// UserChangeInfoInput đầu vào thay đổi thông tin người dùng.
type UserChangeInfoInput struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Email string `json:"email" validate:"required"`
	Note  string `json:"note" validate:"required"`
}

// UnBlockUserInput đầu vào mở khóa người dùng.
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required"`
}

// SetAdministratorInput đầu vào cấp / thu quyền quản trị.
type SetAdministratorInput struct {
	Email   string `json:"email" validate:"required"`
	IsAdmin bool   `json:"isAdmin"`
}
