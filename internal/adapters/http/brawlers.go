package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oatrn/brawlhq/internal/app"
	"github.com/oatrn/brawlhq/internal/domain"
)

type base64ImageModel struct {
	Base64String string `json:"base64_string" binding:"required"`
}

func registerBrawler(svc *app.BrawlerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var model app.RegisterBrawler
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		passport, err := svc.Register(c.Request.Context(), model)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, domain.ErrUsernameTaken) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, passport)
	}
}

func loginBrawler(svc *app.BrawlerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var model app.LoginBrawler
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		passport, err := svc.Login(c.Request.Context(), model)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, passport)
	}
}

func uploadAvatar(svc *app.BrawlerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var model base64ImageModel
		if err := c.ShouldBindJSON(&model); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		img, err := svc.UploadAvatar(c.Request.Context(), brawlerID(c), model.Base64String)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

// errStatus maps domain errors onto HTTP statuses; everything unknown is a 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotChief), errors.Is(err, domain.ErrChiefCannotLeave):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyCrew), errors.Is(err, domain.ErrMissionClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadStatus),
		errors.Is(err, domain.ErrMissionNameEmpty),
		errors.Is(err, domain.ErrNotCrew):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
