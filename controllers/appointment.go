package controllers

import (
	"errors"
	"net/http"

	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	CustomerName string `json:"customerName" binding:"required,notblank"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,len=9,numeric"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string `json:"time" binding:"required,notblank"`
	Service      string `json:"service" binding:"required,notblank"`
	Artist       string `json:"artist" binding:"required,notblank"`
	Notes        string `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment.
// Only the fields present in the body are changed.
type UpdateAppointmentInput struct {
	CustomerName *string `json:"customerName" binding:"omitempty,notblank"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,len=9,numeric"`
	Date         *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time         *string `json:"time" binding:"omitempty,notblank"`
	Service      *string `json:"service" binding:"omitempty,notblank"`
	Artist       *string `json:"artist" binding:"omitempty,notblank"`
	Notes        *string `json:"notes"`
}

// AppointmentController serves the /appointments resource.
type AppointmentController struct {
	appointments *services.AppointmentService
	mailer       services.ConfirmationSender
	location     string
	log          *logrus.Entry
}

func NewAppointmentController(appointments *services.AppointmentService, mailer services.ConfirmationSender, location string, logger *logrus.Logger) *AppointmentController {
	return &AppointmentController{
		appointments: appointments,
		mailer:       mailer,
		location:     location,
		log:          logger.WithField("component", "appointments-http"),
	}
}

// GetAppointments lists every appointment, or those of one day when ?date= is given.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	if _, ok := c.GetQuery("date"); ok {
		ac.GetAppointmentsByDate(c)
		return
	}

	appointments, err := ac.appointments.ListAll(c.Request.Context())
	if err != nil {
		ac.internalError(c, err, "Failed to retrieve appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetAppointmentsByDate lists the appointments of the calendar day in ?date=YYYY-MM-DD.
func (ac *AppointmentController) GetAppointmentsByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "The 'date' query parameter is required")
		return
	}

	appointments, err := ac.appointments.FindByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		ac.internalError(c, err, "Failed to retrieve appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	appointment, err := ac.appointments.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
			return
		}
		ac.internalError(c, err, "Failed to retrieve appointment")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// CreateAppointment books a new appointment and emails the confirmation.
// A failed confirmation is logged; the booking stands.
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	day, err := ac.appointments.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, []utils.FieldError{{Field: "date", Message: err.Error()}})
		return
	}

	appointment, err := ac.appointments.Create(c.Request.Context(), models.Appointment{
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Date:         day,
		Time:         input.Time,
		Service:      input.Service,
		Artist:       input.Artist,
		Notes:        input.Notes,
	})
	if err != nil {
		ac.internalError(c, err, "Failed to create appointment")
		return
	}

	err = ac.mailer.SendConfirmation(c.Request.Context(), appointment.Email, services.AppointmentDetails{
		Name:     appointment.CustomerName,
		Date:     appointment.Date,
		Time:     appointment.Time,
		Location: ac.location,
	})
	if err != nil {
		ac.log.WithError(err).WithField("appointment_id", appointment.ID).Warn("appointment saved but confirmation email failed")
	}

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment changes the supplied fields of an existing appointment
func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, utils.FieldErrors(err))
		return
	}

	patch := models.AppointmentPatch{
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Time:         input.Time,
		Service:      input.Service,
		Artist:       input.Artist,
		Notes:        input.Notes,
	}
	if input.Date != nil {
		day, err := ac.appointments.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithFieldErrors(c, http.StatusBadRequest, []utils.FieldError{{Field: "date", Message: err.Error()}})
			return
		}
		patch.Date = &day
	}

	appointment, err := ac.appointments.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
			return
		}
		ac.internalError(c, err, "Failed to update appointment")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment permanently removes an appointment
func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	deleted, err := ac.appointments.Remove(c.Request.Context(), id)
	if err != nil {
		ac.internalError(c, err, "Failed to delete appointment")
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

func appointmentID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return "", false
	}
	return id.String(), true
}

func (ac *AppointmentController) internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	ac.log.WithError(err).Error(message)
	utils.RespondWithError(c, http.StatusInternalServerError, message)
}
