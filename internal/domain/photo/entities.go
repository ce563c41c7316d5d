package photo

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Photo struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	PhotoID     string `gorm:"column:photo_id;type:char(32);not null;uniqueIndex:ux_photos_photo_id" json:"photo_id"`
	Contributor string `gorm:"column:contributor;size:255;not null" json:"contributor"`
	// Display date, "Mon YYYY" (e.g. "Mar 2024"), computed at submission
	Date    string `gorm:"column:date;size:16;not null" json:"date"`
	FloorID string `gorm:"column:floor_id;size:64;not null;index:idx_photos_floor_status" json:"floor_id"`
	RoomID  string `gorm:"column:room_id;size:64" json:"room_id,omitempty"`
	// Identifier assigned by the image host; immutable once set.
	// Retained on rejected records even after the backing object is deleted.
	ImageHostID      string         `gorm:"column:image_host_id;size:255;not null" json:"image_host_id"`
	ImageURL         string         `gorm:"column:image_url;type:text;not null" json:"image_url"`
	OriginalFileName string         `gorm:"column:original_file_name;size:255" json:"original_file_name,omitempty"`
	Status           Status         `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index:idx_photos_floor_status" json:"status"`
	SubmittedAt      time.Time      `gorm:"column:submitted_at;not null;index:idx_photos_submitted_at" json:"submitted_at"`
	ApprovedAt       *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Photo) TableName() string { return "photos" }
