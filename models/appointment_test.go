package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAppointmentPatch(t *testing.T) {
	var empty AppointmentPatch
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.Columns())

	day := time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC)
	patch := AppointmentPatch{
		CustomerName: strPtr("Maria"),
		Date:         &day,
		Notes:        strPtr(""),
	}
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, map[string]interface{}{
		"customer_name": "Maria",
		"date":          day,
		"notes":         "",
	}, patch.Columns())

	a := Appointment{
		CustomerName: "Ana",
		Email:        "ana@example.com",
		Time:         "10:00",
		Notes:        "fade",
	}
	patch.Apply(&a)
	assert.Equal(t, "Maria", a.CustomerName)
	assert.Equal(t, day, a.Date)
	assert.Empty(t, a.Notes)
	assert.Equal(t, "ana@example.com", a.Email)
	assert.Equal(t, "10:00", a.Time)
}

func TestBeforeCreateAssignsID(t *testing.T) {
	a := Appointment{}
	assert.NoError(t, a.BeforeCreate(nil))
	assert.Len(t, a.ID, 36)

	b := Appointment{ID: "keep-me"}
	assert.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, "keep-me", b.ID)
}
