package handler

import (
	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/validation"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API endpoint answers with
type Response struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Errors     any               `json:"errors,omitempty"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, message string, data any, pagination model.Pagination) {
	c.JSON(200, Response{Success: true, Message: message, Data: data, Pagination: &pagination})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

func respondFieldErrors(c *gin.Context, fields []validation.FieldError) {
	c.JSON(400, Response{Success: false, Message: "Validation failed", Errors: fields})
}
