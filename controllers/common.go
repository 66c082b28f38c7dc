package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/services"
	"github.com/quillhub/quill/utils"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses and
// the uniform response envelope.
func handleServiceError(ctx *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.ErrorWithData(ctx, http.StatusBadRequest, 40001, "validation failed", gin.H{"fields": vErr.Fields})
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, "forbidden")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "authentication required")
	case errors.Is(err, services.ErrSelfFollow):
		utils.Error(ctx, http.StatusBadRequest, 40010, "cannot follow yourself")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50001, "internal error")
	}
}

func parsePage(pageStr string) int {
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 1
	}
	return page
}

func parseID(idStr string) (uint, bool) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
