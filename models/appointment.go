package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a booking for one customer with one artist. Date is always
// stored at midnight in the business timezone; Time is display text ("HH:MM").
type Appointment struct {
	ID           string    `gorm:"type:uuid;primaryKey" bson:"_id" json:"_id"`
	CustomerName string    `gorm:"not null" bson:"customerName" json:"customerName"`
	Email        string    `gorm:"not null" bson:"email" json:"email"`
	Phone        string    `gorm:"not null" bson:"phone" json:"phone"`
	Date         time.Time `gorm:"index;not null" bson:"date" json:"date"`
	Time         string    `gorm:"not null" bson:"time" json:"time"`
	Service      string    `gorm:"not null" bson:"service" json:"service"`
	Artist       string    `gorm:"not null" bson:"artist" json:"artist"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Initialize UUID before creating
func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return
}

// AppointmentPatch is a partial update. Nil fields are left untouched.
type AppointmentPatch struct {
	CustomerName *string
	Email        *string
	Phone        *string
	Date         *time.Time
	Time         *string
	Service      *string
	Artist       *string
	Notes        *string
}

func (p AppointmentPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns maps the supplied fields to their SQL column names.
func (p AppointmentPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.CustomerName != nil {
		cols["customer_name"] = *p.CustomerName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Date != nil {
		cols["date"] = *p.Date
	}
	if p.Time != nil {
		cols["time"] = *p.Time
	}
	if p.Service != nil {
		cols["service"] = *p.Service
	}
	if p.Artist != nil {
		cols["artist"] = *p.Artist
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

// Apply copies the supplied fields onto a.
func (p AppointmentPatch) Apply(a *Appointment) {
	if p.CustomerName != nil {
		a.CustomerName = *p.CustomerName
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Service != nil {
		a.Service = *p.Service
	}
	if p.Artist != nil {
		a.Artist = *p.Artist
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
