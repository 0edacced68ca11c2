package http

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/in"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

type TimetableController struct {
	useCase in.TimetableUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewTimetableController(useCase in.TimetableUseCase, cfg *config.Config, logger out.LoggerPort) *TimetableController {
	return &TimetableController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *TimetableController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/timetable/upload", c.uploadTimetable)
		api.POST("/events", c.createEvents)
	}
}

type CreateEventsRequest struct {
	Events []domain.Occurrence `json:"events" binding:"required,min=1"`
}

func (c *TimetableController) uploadTimetable(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File provided is not an image."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	occurrences, rawText, err := c.useCase.ParseTimetableImage(ctx.Request.Context(), imageBytes)
	if err != nil {
		// Недоступный OCR-движок - терминальная ошибка пакета,
		// нечитаемое изображение - ошибка запроса
		if errors.Is(err, domain.ErrOCRUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrImageDecode) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not process the provided image file."})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(occurrences) == 0 {
		ctx.JSON(http.StatusOK, gin.H{
			"error":    "Could not parse any events. Try a clearer image or a different format.",
			"raw_text": rawText,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"events": occurrences})
}

func (c *TimetableController) createEvents(ctx *gin.Context) {
	var req CreateEventsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := c.useCase.SubmitEvents(ctx.Request.Context(), req.Events)

	ctx.JSON(http.StatusOK, report)
}

func (c *TimetableController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
