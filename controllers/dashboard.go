package controllers

import (
	"net/http"
	"sort"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardOverview struct {
	TotalAppointments int                   `json:"totalAppointments"`
	Today             DayAgenda             `json:"today"`
	Tomorrow          DayAgenda             `json:"tomorrow"`
	Artists           []ArtistLoad          `json:"artists"`
	Upcoming          []UpcomingAppointment `json:"upcoming"`
}

type DayAgenda struct {
	Date         string               `json:"date"`
	Count        int                  `json:"count"`
	Appointments []models.Appointment `json:"appointments"`
}

type ArtistLoad struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

type UpcomingAppointment struct {
	Name    string `json:"name"`
	Service string `json:"service"`
	Date    string `json:"date"` // "Today", "Tomorrow" or YYYY-MM-DD
	Time    string `json:"time"`
}

type DashboardController struct {
	appointments *services.AppointmentService
	log          *logrus.Entry
}

func NewDashboardController(appointments *services.AppointmentService, logger *logrus.Logger) *DashboardController {
	return &DashboardController{
		appointments: appointments,
		log:          logger.WithField("component", "dashboard-http"),
	}
}

// GetDashboardOverview summarizes the book for the operator: today's and
// tomorrow's agendas, per-artist load and the next appointments.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := dc.appointments.ListAll(ctx)
	if err != nil {
		dc.fail(c, err)
		return
	}

	today := dc.appointments.Today()
	tomorrow := dc.appointments.Tomorrow()

	todays, err := dc.appointments.FindByDay(ctx, today)
	if err != nil {
		dc.fail(c, err)
		return
	}
	tomorrows, err := dc.appointments.FindByDay(ctx, tomorrow)
	if err != nil {
		dc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardOverview{
		TotalAppointments: len(all),
		Today:             agenda(today, todays),
		Tomorrow:          agenda(tomorrow, tomorrows),
		Artists:           artistLoad(all, today),
		Upcoming:          upcoming(all, today, 5),
	})
}

func (dc *DashboardController) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	dc.log.WithError(err).Error("failed to build dashboard overview")
	utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
}

func agenda(day time.Time, appointments []models.Appointment) DayAgenda {
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Time < appointments[j].Time
	})
	return DayAgenda{
		Date:         day.Format("2006-01-02"),
		Count:        len(appointments),
		Appointments: appointments,
	}
}

// artistLoad counts the appointments from today on, busiest artist first.
func artistLoad(all []models.Appointment, today time.Time) []ArtistLoad {
	counts := map[string]int{}
	for _, a := range all {
		if a.Date.Before(today) {
			continue
		}
		counts[a.Artist]++
	}

	out := make([]ArtistLoad, 0, len(counts))
	for artist, n := range counts {
		out = append(out, ArtistLoad{Artist: artist, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Artist < out[j].Artist
	})
	return out
}

func upcoming(all []models.Appointment, today time.Time, limit int) []UpcomingAppointment {
	future := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		if !a.Date.Before(today) {
			future = append(future, a)
		}
	}
	sort.SliceStable(future, func(i, j int) bool {
		if !future[i].Date.Equal(future[j].Date) {
			return future[i].Date.Before(future[j].Date)
		}
		return future[i].Time < future[j].Time
	})
	if len(future) > limit {
		future = future[:limit]
	}

	tomorrow := today.AddDate(0, 0, 1)
	out := make([]UpcomingAppointment, 0, len(future))
	for _, a := range future {
		var label string
		switch {
		case a.Date.Equal(today):
			label = "Today"
		case a.Date.Equal(tomorrow):
			label = "Tomorrow"
		default:
			label = a.Date.In(today.Location()).Format("2006-01-02")
		}
		out = append(out, UpcomingAppointment{
			Name:    a.CustomerName,
			Service: a.Service,
			Date:    label,
			Time:    a.Time,
		})
	}
	return out
}
