package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"cbs/src/common"
	"cbs/src/models"
	"cbs/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func generateJWT(user *models.User) (string, error) {
	claims := &types.Claims{
		Username: user.Email,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(user.ID)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := types.ROLE_STUDENT
			if body.Role != "" {
				role = types.UserRole(body.Role)
			}
			user, err := common.CreateUser(body.Email, body.Password, role)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": user})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user, err := common.AuthenticateUser(body.Email, body.Password)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			token, err := generateJWT(user)
			if err != nil {
				log.Printf("error signing token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token, "data": user})
		})
	return g
}

func accountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/me", func(ctx *gin.Context) {
			userID := ctx.GetUint("id")
			user, err := common.GetUser(userID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		GET("/me/bookings", func(ctx *gin.Context) {
			userID := ctx.GetUint("id")
			bookings, err := common.ListBookingsForUser(userID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}
