package model

import "time"

// kv_entries — долговременное хранилище «ключ → значение» для снимков состояния.
type Entry struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string { return "kv_entries" }
