package seed

import (
	"time"

	"guestlist/config"
	"guestlist/internal/logger"
	. "guestlist/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	now := time.Now().UTC()

	guests := []Guest{
		{
			FullName:    "Morgan Lee",
			Email:       stringPtr("morgan.lee@example.com"),
			Side:        SidePartnerOne,
			HouseholdID: stringPtr("Lee Family"),
			RSVPStatus:  RSVPPending,
			Source:      SourceManual,
			LastUpdated: now,
		}, {
			FullName:    "Casey Lee",
			Side:        SidePartnerOne,
			HouseholdID: stringPtr("Lee Family"),
			RSVPStatus:  RSVPPending,
			Source:      SourceManual,
			LastUpdated: now,
		}, {
			FullName:    "Riley Lee",
			Side:        SidePartnerOne,
			HouseholdID: stringPtr("Lee Family"),
			RSVPStatus:  RSVPPending,
			Source:      SourceManual,
			LastUpdated: now,
		}, {
			FullName:       "Sam Ortiz",
			Email:          stringPtr("sam.ortiz@example.com"),
			Phone:          stringPtr("555-201-0199"),
			Side:           SidePartnerTwo,
			RSVPStatus:     RSVPYes,
			PlusOneAllowed: true,
			MealChoice:     stringPtr("vegetarian"),
			Source:         SourceManual,
			LastUpdated:    now,
		},
	}

	for _, guest := range guests {
		var existing Guest
		if err := db.First(&existing, "full_name = ?", guest.FullName).Error; err == nil {
			log.Info("Guest already exists", "fullName", guest.FullName)
			continue
		}
		log.Info("Seeding guest", "fullName", guest.FullName)
		if err := db.Create(&guest).Error; err != nil {
			log.Er("failed to create guest", err, "fullName", guest.FullName)
		}
	}

	return nil
}
