package domain

import (
	"math"
	"strings"
	"time"
)

// ActivityCategory groups activities that a single guide may run side by side.
// MaxParticipantsPerGuide caps the headcount one employee supervises at once
// across all overlapping bookings of the category.
type ActivityCategory struct {
	ID                      int64
	Name                    string
	MaxParticipantsPerGuide int
}

// LocationDetails structured address of an activity
type LocationDetails struct {
	Address    *string
	City       *string
	PostalCode *string
	Latitude   *float64
	Longitude  *float64
}

// HasCoordinates returns true when both latitude and longitude are known
func (l LocationDetails) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Activity is a bookable product.
// Category is loaded together with the activity by the store; the category
// itself never references activities back.
type Activity struct {
	ID              int64
	Name            string
	CategoryID      *int64
	Category        *ActivityCategory
	Location        string
	LocationDetails LocationDetails
	DurationMinutes int
	MinParticipants int
	MaxParticipants int
	PricePerPerson  float64
	DepositPercent  float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCategory returns true if the activity belongs to a category with a known ceiling
func (a *Activity) HasCategory() bool {
	return a.CategoryID != nil && a.Category != nil
}

// CategoryName returns the category name or an empty string
func (a *Activity) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

// SameCategoryAs returns true when both activities have the same non-null category
func (a *Activity) SameCategoryAs(other *Activity) bool {
	if a == nil || other == nil || a.CategoryID == nil || other.CategoryID == nil {
		return false
	}
	return *a.CategoryID == *other.CategoryID
}

// SameLocationAs compares location identity.
// With coordinates on both sides, places within 0.0001 degrees on each axis are equal;
// otherwise the lower-cased "location|city" text keys are compared.
func (a *Activity) SameLocationAs(other *Activity) bool {
	if a == nil || other == nil {
		return false
	}

	if a.LocationDetails.HasCoordinates() && other.LocationDetails.HasCoordinates() {
		latDiff := math.Abs(*a.LocationDetails.Latitude - *other.LocationDetails.Latitude)
		lonDiff := math.Abs(*a.LocationDetails.Longitude - *other.LocationDetails.Longitude)
		return latDiff < locationCoordinateDelta && lonDiff < locationCoordinateDelta
	}

	return a.LocationKey() == other.LocationKey()
}

// LocationKey text fallback of the location identity
func (a *Activity) LocationKey() string {
	city := ""
	if a.LocationDetails.City != nil {
		city = *a.LocationDetails.City
	}
	return strings.TrimSpace(strings.ToLower(a.Location + "|" + city))
}

// AcceptsParticipants checks the participant count against the activity bounds
func (a *Activity) AcceptsParticipants(n int) bool {
	return n >= a.MinParticipants && n <= a.MaxParticipants
}

// DefaultParticipants count used when a caller does not specify one
func (a *Activity) DefaultParticipants() int {
	if a.MinParticipants > 0 {
		return a.MinParticipants
	}
	return DefaultParticipantCount
}

// Pricing returns the total price and the deposit rounded half up to cents
func (a *Activity) Pricing(participants int) (total float64, deposit float64) {
	total = roundCents(a.PricePerPerson * float64(participants))
	deposit = roundCents(total * a.DepositPercent / 100)
	return total, deposit
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
