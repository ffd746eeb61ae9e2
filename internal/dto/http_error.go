// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// message 錯誤描述
	Message string `json:"message" example:"Invalid input"`
	// errors 欄位驗證錯誤 (field -> messages)
	Errors map[string][]string `json:"errors,omitempty"`
}

// MessageResponse 單一訊息回應
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"success"`
}
