// Package dto định nghĩa input cho domain export.
package dto

// ExportInput yêu cầu xuất một hoặc nhiều video từ thư viện
type ExportInput struct {
	VideoIDs     []string `json:"videoIds" validate:"required,min=1,max=100,dive,required"`
	Format       string   `json:"format" validate:"required,oneof=txt csv json markdown"`
	IncludeNotes bool     `json:"includeNotes,omitempty"`
	IncludeQA    bool     `json:"includeQA,omitempty"`
}

// ExportEmailInput yêu cầu xuất rồi gửi qua email
type ExportEmailInput struct {
	ExportInput
	Recipient string `json:"recipient" validate:"required,email"`
}

// DeliveryCreateInput dùng cho CRUD quản trị lịch sử export
type DeliveryCreateInput struct {
	Format  string `json:"format" validate:"required,oneof=txt csv json markdown"`
	Channel string `json:"channel" validate:"required,oneof=download email"`
}

// DeliveryUpdateInput dùng cho CRUD quản trị lịch sử export
type DeliveryUpdateInput struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=generated sent failed" transform:"optional"`
}
