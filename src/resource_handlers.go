package main

import (
	"net/http"
	"strconv"

	"cbs/src/common"
	"cbs/src/db"
	"cbs/src/types"
	"cbs/src/utils"

	"github.com/gin-gonic/gin"
)

func publicResourceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/resources", func(ctx *gin.Context) {
			filters := common.ParseResourceFilters(ctx.Request.URL.Query())
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 20, 1, 100)
			offset := utils.ClampInt(atoiOrZero(ctx.Query("offset")), 0, 0, 10000)
			resources, err := common.SearchResources(filters, limit, offset)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resources, "count": len(resources)})
		}).
		GET("/resources/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			resource, err := common.GetResource(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resource})
		}).
		GET("/resources/:id/reviews", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			limit := utils.ClampInt(atoiOrZero(ctx.Query("limit")), 20, 1, 100)
			offset := utils.ClampInt(atoiOrZero(ctx.Query("offset")), 0, 0, 10000)
			reviews, err := common.ListReviews(params.ID, false, limit, offset)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		}).
		GET("/resources/:id/rating", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			avg, err := common.AverageRating(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"rating_avg": avg})
		}).
		GET("/resources/:id/conflicts", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			startDt, err := utils.ParseBookingTime(ctx.Query("start_dt"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			endDt, err := utils.ParseBookingTime(ctx.Query("end_dt"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conflicts, err := common.FindConflicts(db.GetDb(), params.ID, startDt, endDt, 0)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": conflicts, "count": len(conflicts)})
		})
	return g
}

func resourceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/resources", func(ctx *gin.Context) {
			role := types.UserRole(ctx.GetString("role"))
			if role != types.ROLE_STAFF && role != types.ROLE_ADMIN {
				ctx.Status(http.StatusForbidden)
				return
			}
			var body types.CreateResourceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			resource, err := common.CreateResource(ctx.GetUint("id"), &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": resource})
		}).
		PUT("/resources/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if !canManageResource(ctx, params.ID) {
				ctx.Status(http.StatusForbidden)
				return
			}
			var body types.UpdateResourceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			resource, err := common.UpdateResource(params.ID, &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resource})
		}).
		PUT("/resources/:id/archive", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if !canManageResource(ctx, params.ID) {
				ctx.Status(http.StatusForbidden)
				return
			}
			resource, err := common.ArchiveResource(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resource})
		}).
		PUT("/resources/:id/unarchive", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if !canManageResource(ctx, params.ID) {
				ctx.Status(http.StatusForbidden)
				return
			}
			resource, err := common.UnarchiveResource(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resource})
		}).
		GET("/resources/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if !canManageResource(ctx, params.ID) {
				ctx.Status(http.StatusForbidden)
				return
			}
			bookings, err := common.ListBookingsForResource(params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

// canManageResource allows admins, and staff who created the resource.
func canManageResource(ctx *gin.Context, resourceID uint) bool {
	role := types.UserRole(ctx.GetString("role"))
	if role == types.ROLE_ADMIN {
		return true
	}
	if role != types.ROLE_STAFF {
		return false
	}
	resource, err := common.GetResource(resourceID)
	if err != nil {
		return false
	}
	return resource.CreatedBy == ctx.GetUint("id")
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
