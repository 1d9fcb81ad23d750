package models

import "time"

type GuestSide string

const (
	SidePartnerOne GuestSide = "partner_one"
	SidePartnerTwo GuestSide = "partner_two"
	SideBoth       GuestSide = "both"
	SideUnknown    GuestSide = "unknown"
)

type RSVPStatus string

const (
	RSVPPending RSVPStatus = "pending"
	RSVPYes     RSVPStatus = "yes"
	RSVPNo      RSVPStatus = "no"
)

type GuestSource string

const (
	SourceManual         GuestSource = "manual"
	SourceImport         GuestSource = "import"
	SourceRSVPSubmission GuestSource = "rsvp_submission"
)

// Guest is the canonical roster record. FullName is never empty for a
// persisted row; the pipeline never hard-deletes guests.
type Guest struct {
	BaseUUIDModel
	FullName    string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Email       *string   `gorm:"type:varchar(255)"          json:"email"`
	Phone       *string   `gorm:"type:varchar(64)"           json:"phone"`
	Side        GuestSide `gorm:"type:varchar(20);not null;default:unknown" json:"side"`
	HouseholdID *string   `gorm:"type:varchar(255);index"    json:"householdId"`

	RSVPStatus         RSVPStatus `gorm:"type:varchar(10);not null;default:pending" json:"rsvpStatus"`
	PlusOneAllowed     bool       `gorm:"not null;default:false" json:"plusOneAllowed"`
	PlusOneName        *string    `gorm:"type:varchar(255)"      json:"plusOneName"`
	MealChoice         *string    `gorm:"type:varchar(255)"      json:"mealChoice"`
	DietaryNotes       *string    `gorm:"type:text"              json:"dietaryNotes"`
	NeedsShuttle       bool       `gorm:"not null;default:false" json:"needsShuttle"`
	NeedsAccommodation bool       `gorm:"not null;default:false" json:"needsAccommodation"`
	SongRequest        *string    `gorm:"type:varchar(255)"      json:"songRequest"`
	RSVPNotes          *string    `gorm:"type:text"              json:"rsvpNotes"`

	Source      GuestSource `gorm:"type:varchar(20);not null;default:manual" json:"source"`
	LastUpdated time.Time   `gorm:"not null"                                 json:"lastUpdated"`
}

type CreateGuestRequest struct {
	FullName    string    `json:"fullName"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Side        GuestSide `json:"side"`
	HouseholdID *string   `json:"householdId"`
}

type UpdateGuestRequest struct {
	FullName    *string    `json:"fullName"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Side        *GuestSide `json:"side"`
	HouseholdID *string    `json:"householdId"`
}

func ValidSides() []GuestSide {
	return []GuestSide{SidePartnerOne, SidePartnerTwo, SideBoth, SideUnknown}
}
