// Package dto định nghĩa input cho domain search.
package dto

// SearchQuery là tham số tìm kiếm trong thư viện của caller.
// mode=text: so khớp chuỗi với snippet + highlight offsets.
// mode=semantic: proxy sang dịch vụ vector, tự rơi về text khi dịch vụ không khả dụng.
type SearchQuery struct {
	Q     string `query:"q" json:"q" validate:"required,min=1,no_xss"`
	Mode  string `query:"mode" json:"mode" validate:"omitempty,oneof=text semantic"`
	Scope string `query:"scope" json:"scope" validate:"omitempty,oneof=all transcripts notes"`
	Limit int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}
