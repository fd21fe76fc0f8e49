package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	PunchEntry = "entry"
	PunchExit  = "exit"
)

// TimeRecord is a single punch. It is never updated after creation.
type TimeRecord struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_time_records_user_ts"`
	Type      string    `json:"type" gorm:"not null;size:10"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index:idx_time_records_user_ts;index"`
	Location  *string   `json:"location"`
	Latitude  *float64  `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude *float64  `json:"longitude" gorm:"type:decimal(11,8)"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
