package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GigStatus string

const (
	GigStatusOpen     GigStatus = "open"     // accepting bids
	GigStatusAssigned GigStatus = "assigned" // a freelancer has been hired
)

type Gig struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Budget      int64  `gorm:"not null" json:"budget"`

	// Tags disimpan sebagai JSON array, e.g. ["logo", "branding"]
	Tags datatypes.JSON `json:"tags"`

	// open -> assigned, one-way. Only the hire workflow writes this field.
	Status GigStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
}
