package dto

import (
	"net/http"
)

// PaginationInfo describes the position of a list response within the full
// result set. PreviousPage and NextPage are omitted at the boundaries.
type PaginationInfo struct {
	TotalDocuments int64 `json:"totalDocuments" example:"42"`
	TotalPages     int   `json:"totalPages" example:"5"`
	CurrentPage    int   `json:"currentPage" example:"2"`
	PreviousPage   *int  `json:"previousPage,omitempty" example:"1"`
	NextPage       *int  `json:"nextPage,omitempty" example:"3"`
}

// Payload wraps response data together with optional pagination
type Payload struct {
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Data       interface{}     `json:"data,omitempty"`
}

// Response is the standard success envelope for all endpoints
type Response struct {
	Success bool     `json:"success" example:"true"`
	Message string   `json:"message" example:"Operation completed successfully"`
	Payload *Payload `json:"payload,omitempty"`
}

// ErrorDetail carries the HTTP status and a human-readable message
type ErrorDetail struct {
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"resource not found"`
}

// ErrorResponse is the standard failure envelope for all endpoints
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Error   ErrorDetail `json:"error"`
}

// NewSuccessResponse creates a success envelope with data only
func NewSuccessResponse(message string, data interface{}) *Response {
	resp := &Response{
		Success: true,
		Message: message,
	}
	if data != nil {
		resp.Payload = &Payload{Data: data}
	}
	return resp
}

// NewPaginatedResponse creates a success envelope with pagination and data
func NewPaginatedResponse(message string, pagination PaginationInfo, data interface{}) *Response {
	return &Response{
		Success: true,
		Message: message,
		Payload: &Payload{
			Pagination: &pagination,
			Data:       data,
		},
	}
}

// NewErrorResponse creates a failure envelope
func NewErrorResponse(status int, message string) *ErrorResponse {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Status:  status,
			Message: message,
		},
	}
}
