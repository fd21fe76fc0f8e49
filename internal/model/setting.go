package model

import "time"

type Setting struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Key       string    `json:"key" gorm:"column:key;unique;not null;size:100"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
