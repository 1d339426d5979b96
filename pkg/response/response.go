package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status is the closed set of outcome markers carried by every envelope.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Response is the failure envelope: a SimpleStatus plus detail.
type Response struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// SimpleStatus is the minimal acknowledgment body for operations that
// return no entity.
type SimpleStatus struct {
	Status Status `json:"status"`
}

// AppError represents a structured application error with HTTP status and message.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 409)
	Message    string // Human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

// NewBadRequest reports malformed or invalid input, including dangling
// foreign-key ids.
func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

// NewNotFound reports a lookup by id or name that yielded nothing.
func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

// NewConflict reports a uniqueness violation such as a duplicate username.
func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound
}

// --- Gin response helpers ---

// OK sends a 200 response with the entity body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response with the entity body.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Ack sends a bare SimpleStatus success body.
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, SimpleStatus{Status: StatusSuccess})
}

// Error sends an error response. If err is an *AppError, its status is
// used; otherwise a generic 500 internal server error is returned.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Status:  StatusFailure,
			Message: appErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Status:  StatusFailure,
		Message: err.Error(),
	})
}

// BadRequest sends a 400 failure response.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Status: StatusFailure, Message: msg})
}

// NotFound sends a 404 failure response.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Status: StatusFailure, Message: msg})
}

// Unauthorized sends a 401 failure response.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Status: StatusFailure, Message: msg})
}
