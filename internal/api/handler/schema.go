package handler

import (
	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// errorResponse is the standard envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

type basicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl"`
}

type authStatusResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

type imageResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Image   *domain.Image `json:"image"`
}

type imagesResponse struct {
	Success bool            `json:"success"`
	Images  []*domain.Image `json:"images"`
}

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

type batchUploadResponse struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	Images        []*domain.Image      `json:"images"`
	TotalUploaded int                  `json:"totalUploaded"`
	Failures      []ports.BatchFailure `json:"failures,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type uploadURLRequest struct {
	ImageURL    string `json:"imageUrl"    validate:"required,url"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category"    validate:"required"`
	Orientation string `json:"orientation" validate:"required"`
}
