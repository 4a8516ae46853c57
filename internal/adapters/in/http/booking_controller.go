package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/config"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/in"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/services/availability_service"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type BookingController struct {
	useCase  in.AvailabilityUseCase
	calendar *domain.CalendarConfig
	cfg      *config.Config
}

func NewBookingController(useCase in.AvailabilityUseCase, calendar *domain.CalendarConfig, cfg *config.Config) *BookingController {
	return &BookingController{
		useCase:  useCase,
		calendar: calendar,
		cfg:      cfg,
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	// Публичные маршруты виджета онлайн-записи
	api := router.Group("/api/v1")
	{
		api.GET("/appointment-types", c.listAppointmentTypes)
		api.GET("/availability", c.getPublicAvailability)
		api.POST("/bookings", c.createBooking)
	}

	// Маршруты админского календаря за basic-авторизацией
	admin := router.Group("/api/v1/admin")
	admin.Use(c.basicAuth())
	{
		admin.GET("/availability", c.getAdminAvailability)
		admin.GET("/calendar/:date", c.classifyDay)
	}
}

// listAppointmentTypes отдает только виды приема, доступные для онлайн-записи
func (c *BookingController) listAppointmentTypes(ctx *gin.Context) {
	bookable := make([]domain.AppointmentType, 0)
	for _, t := range c.calendar.AppointmentTypes {
		if t.OnlineBookable {
			bookable = append(bookable, t)
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"appointmentTypes": bookable})
}

func (c *BookingController) getPublicAvailability(ctx *gin.Context) {
	c.getAvailability(ctx, true)
}

func (c *BookingController) getAdminAvailability(ctx *gin.Context) {
	c.getAvailability(ctx, false)
}

func (c *BookingController) getAvailability(ctx *gin.Context, publicOnly bool) {
	startDate, err := utils.ParseDate(ctx.Query("start"), c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
		return
	}

	endDate, err := utils.ParseDate(ctx.Query("end"), c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format"})
		return
	}

	typeCode := domain.AppointmentTypeCode(ctx.Query("type"))
	if typeCode == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	slots, err := c.useCase.GetAvailableSlots(ctx.Request.Context(), startDate, endDate, typeCode, publicOnly)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"appointmentType": typeCode,
		"slots":           slots,
	})
}

func (c *BookingController) createBooking(ctx *gin.Context) {
	var req domain.BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.useCase.Book(ctx.Request.Context(), req)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (c *BookingController) classifyDay(ctx *gin.Context) {
	date, err := utils.ParseDate(ctx.Param("date"), c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	info := c.useCase.ClassifyDay(ctx.Request.Context(), date)
	ctx.JSON(http.StatusOK, info)
}

// renderError переводит ошибки движка в статусы HTTP
// Конфликт слота отличим от прочих отказов: UI по 409 перезапрашивает доступность
func (c *BookingController) renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, availability_service.ErrInvalidDateRange),
		errors.Is(err, availability_service.ErrUnknownAppointmentType),
		errors.Is(err, availability_service.ErrMissingClient),
		errors.Is(err, availability_service.ErrWeakPassword):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, availability_service.ErrTypeNotBookableOnline):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, availability_service.ErrClientNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability_service.ErrSlotUnavailable):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "slot_unavailable"})
	case errors.Is(err, availability_service.ErrEmailAlreadyRegistered):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "email_registered"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *BookingController) basicAuth() gin.HandlerFunc {
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
