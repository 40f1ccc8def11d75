package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JobRunner runs the daily jobs on demand.
type JobRunner interface {
	RunCleanup(ctx context.Context) int64
	RunReminders(ctx context.Context) (sent, failed int)
}

// ReminderController lets the operator trigger the scheduled jobs outside
// their cron slot, e.g. after a missed run.
type ReminderController struct {
	jobs JobRunner
	log  *logrus.Entry
}

func NewReminderController(jobs JobRunner, logger *logrus.Logger) *ReminderController {
	return &ReminderController{
		jobs: jobs,
		log:  logger.WithField("component", "jobs-http"),
	}
}

// SendReminders texts tomorrow's customers now.
func (rc *ReminderController) SendReminders(c *gin.Context) {
	rc.log.WithField("username", c.GetString("username")).Info("reminder job triggered manually")
	sent, failed := rc.jobs.RunReminders(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}

// RunCleanup removes past appointments now.
func (rc *ReminderController) RunCleanup(c *gin.Context) {
	rc.log.WithField("username", c.GetString("username")).Info("cleanup job triggered manually")
	removed := rc.jobs.RunCleanup(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
