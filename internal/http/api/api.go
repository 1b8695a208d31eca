package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumenview/lumen/internal/store"
	"github.com/lumenview/lumen/internal/store/validate"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *Error)

// ResolveEndpoint adapts a handler returning (result, *Error) to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// MapStoreError translates the store's typed failures onto HTTP statuses.
// Safe-delete conflicts surface the blocking playlist names; everything else
// keeps the underlying cause in the message for diagnostics.
func MapStoreError(err error) *Error {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		return &Error{Code: http.StatusConflict, Message: conflict.Error()}
	}
	var invalid *validate.Error
	if errors.As(err, &invalid) {
		return &Error{Code: http.StatusUnprocessableEntity, Message: invalid.Error()}
	}
	if errors.Is(err, store.ErrNotFound) {
		return &Error{Code: http.StatusNotFound, Message: "not found"}
	}
	return &Error{Code: http.StatusInternalServerError, Message: "operation failed: " + err.Error()}
}
