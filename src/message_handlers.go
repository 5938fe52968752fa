package main

import (
	"net/http"

	"cbs/src/common"
	"cbs/src/types"
	"cbs/src/utils"

	"github.com/gin-gonic/gin"
)

func messageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/:id/messages", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateMessageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			message, err := common.CreateMessage(params.ID, ctx.GetUint("id"), body.Body, body.RecipientID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": message})
		}).
		GET("/bookings/:id/messages", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			page := utils.ClampInt(atoiOrZero(ctx.Query("page")), 1, 1, 10000)
			perPage := utils.ClampInt(atoiOrZero(ctx.Query("per_page")), 50, 1, 200)
			includeHidden := types.UserRole(ctx.GetString("role")) == types.ROLE_ADMIN && ctx.Query("include_hidden") == "true"
			messages, err := common.ListMessages(params.ID, ctx.GetUint("id"), page, perPage, includeHidden)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": messages, "count": len(messages)})
		}).
		PUT("/messages/:id/report", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			message, err := common.ReportMessage(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": message})
		})
	return g
}
