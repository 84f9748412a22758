package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func parsePagination(ctx *gin.Context) (page, limit int) {
	page = 1
	limit = 10
	if p := ctx.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return page, limit
}
