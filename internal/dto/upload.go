// File: internal/dto/upload.go
package dto

// UploadResponse 上傳結果，path 可作為 company_logo 使用
// swagger:model dto.UploadResponse
type UploadResponse struct {
	Path string `json:"path" example:"logos/3f6c.png"`
}
