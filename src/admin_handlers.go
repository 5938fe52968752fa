package main

import (
	"fmt"
	"net/http"

	"cbs/src/common"
	"cbs/src/types"
	"cbs/src/utils"

	"github.com/gin-gonic/gin"
)

func auditFrom(ctx *gin.Context, action, targetTable string, targetID uint, details string) {
	ip := ctx.ClientIP()
	common.LogAdminAction(ctx.GetUint("id"), action, targetTable, targetID, details, &ip)
}

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings/pending", func(ctx *gin.Context) {
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			bookings, err := common.ListPendingBookings(limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/resources", func(ctx *gin.Context) {
			var status *types.ResourceStatus
			if s := ctx.Query("status"); s != "" {
				rs := types.ResourceStatus(s)
				status = &rs
			}
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			resources, err := common.ListResourcesAdmin(status, limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resources, "count": len(resources)})
		}).
		GET("/users", func(ctx *gin.Context) {
			var role *types.UserRole
			if r := ctx.Query("role"); r != "" {
				ur := types.UserRole(r)
				role = &ur
			}
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			users, err := common.ListUsers(role, limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		GET("/reviews/reported", func(ctx *gin.Context) {
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			reviews, err := common.ListReportedReviews(limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		}).
		GET("/reviews/hidden", func(ctx *gin.Context) {
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			reviews, err := common.ListHiddenReviews(limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		}).
		PUT("/reviews/:id/hide", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			review, err := common.HideReview(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "review.hide", "reviews", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		PUT("/reviews/:id/unhide", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			review, err := common.UnhideReview(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "review.unhide", "reviews", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		PUT("/reviews/:id/unreport", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			review, err := common.UnreportReview(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "review.unreport", "reviews", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		GET("/messages/reported", func(ctx *gin.Context) {
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 50, 1, 200)
			messages, err := common.ListReportedMessages(limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": messages, "count": len(messages)})
		}).
		PUT("/messages/:id/hide", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			message, err := common.HideMessage(params.ID, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "message.hide", "messages", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": message})
		}).
		GET("/audit-logs", func(ctx *gin.Context) {
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 100, 1, 500)
			logs, err := common.ListAuditLogs(limit)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": logs, "count": len(logs)})
		})
	return g
}

func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/categories", func(ctx *gin.Context) {
			categories, err := common.ListCategories(false)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
		}).
		GET("/locations", func(ctx *gin.Context) {
			locations, err := common.ListLocations(false)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": locations, "count": len(locations)})
		})
	return g
}

func adminCatalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/categories", func(ctx *gin.Context) {
			var body types.CreateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			category, err := common.CreateCategory(&body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "category.create", "categories", category.ID, fmt.Sprintf("name=%s", category.Name))
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		DELETE("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			category, err := common.DeactivateCategory(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "category.deactivate", "categories", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": category})
		}).
		POST("/locations", func(ctx *gin.Context) {
			var body types.CreateLocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			location, err := common.CreateLocation(&body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "location.create", "locations", location.ID, fmt.Sprintf("name=%s", location.Name))
			ctx.JSON(http.StatusCreated, gin.H{"data": location})
		}).
		DELETE("/locations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			location, err := common.DeactivateLocation(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			auditFrom(ctx, "location.deactivate", "locations", params.ID, "")
			ctx.JSON(http.StatusOK, gin.H{"data": location})
		})
	return g
}
