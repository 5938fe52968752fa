package main

import (
	"errors"
	"log"
	"net/http"

	"cbs/src/types"

	"github.com/gin-gonic/gin"
)

func statusForError(err error) int {
	var derr *types.DomainError
	if !errors.As(err, &derr) {
		return http.StatusInternalServerError
	}
	switch derr.Kind {
	case types.KIND_INVALID_WINDOW:
		return http.StatusBadRequest
	case types.KIND_NOT_FOUND:
		return http.StatusNotFound
	case types.KIND_CONFLICT:
		return http.StatusConflict
	case types.KIND_INVALID_TRANSITION:
		return http.StatusUnprocessableEntity
	case types.KIND_UNAUTHORIZED:
		return http.StatusForbidden
	case types.KIND_PAYLOAD_INVALID:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] error: %s\n", ctx.FullPath(), err.Error())
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
