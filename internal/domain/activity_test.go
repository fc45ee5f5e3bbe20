package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
)

func TestActivity_SameLocationAs(t *testing.T) {
	withCoords := func(lat, lon float64) *Activity {
		return &Activity{
			Location:        "Base camp",
			LocationDetails: LocationDetails{Latitude: ptr.Ptr(lat), Longitude: ptr.Ptr(lon)},
		}
	}
	withText := func(location, city string) *Activity {
		return &Activity{Location: location, LocationDetails: LocationDetails{City: ptr.Ptr(city)}}
	}

	t.Run("coordinates within tolerance", func(t *testing.T) {
		assert.True(t, withCoords(45.35000, 25.55000).SameLocationAs(withCoords(45.35005, 25.55009)))
	})

	t.Run("coordinates beyond tolerance", func(t *testing.T) {
		assert.False(t, withCoords(45.3500, 25.5500).SameLocationAs(withCoords(45.3502, 25.5500)))
	})

	t.Run("text key ignores case and outer spaces", func(t *testing.T) {
		assert.True(t, withText("  Zip Line Park", "Sinaia ").SameLocationAs(withText("zip line park", "SINAIA")))
	})

	t.Run("text key differs by city", func(t *testing.T) {
		assert.False(t, withText("Zip Line Park", "Sinaia").SameLocationAs(withText("Zip Line Park", "Busteni")))
	})

	t.Run("coordinates on one side fall back to text", func(t *testing.T) {
		a := withCoords(45.35, 25.55)
		b := &Activity{Location: "base camp"}
		assert.True(t, a.SameLocationAs(b))
	})
}

func TestActivity_SameCategoryAs(t *testing.T) {
	adventure := &Activity{CategoryID: ptr.Ptr(int64(1))}
	alsoAdventure := &Activity{CategoryID: ptr.Ptr(int64(1))}
	water := &Activity{CategoryID: ptr.Ptr(int64(2))}
	uncategorized := &Activity{}

	assert.True(t, adventure.SameCategoryAs(alsoAdventure))
	assert.False(t, adventure.SameCategoryAs(water))
	assert.False(t, adventure.SameCategoryAs(uncategorized))
	assert.False(t, uncategorized.SameCategoryAs(uncategorized))
}

func TestActivity_Pricing(t *testing.T) {
	activity := &Activity{PricePerPerson: 149.99, DepositPercent: 30}

	total, deposit := activity.Pricing(3)

	assert.InDelta(t, 449.97, total, 0.0001)
	assert.InDelta(t, 134.99, deposit, 0.0001)
}

func TestActivity_Participants(t *testing.T) {
	activity := &Activity{MinParticipants: 2, MaxParticipants: 10}

	assert.True(t, activity.AcceptsParticipants(2))
	assert.True(t, activity.AcceptsParticipants(10))
	assert.False(t, activity.AcceptsParticipants(1))
	assert.False(t, activity.AcceptsParticipants(11))
	assert.Equal(t, 2, activity.DefaultParticipants())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, cancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, cancelled.CanTransitionTo(StatusCancelled))
}

func TestBooking_CanAcceptPayment(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, (&Booking{Status: StatusConfirmed, PaymentStatus: PaymentUnpaid, PaymentDeadline: &deadline}).CanAcceptPayment(now))
	assert.True(t, (&Booking{Status: StatusConfirmed, PaymentStatus: PaymentDepositPaid}).CanAcceptPayment(now))
	assert.False(t, (&Booking{Status: StatusConfirmed, PaymentStatus: PaymentUnpaid, PaymentDeadline: &past}).CanAcceptPayment(now))
	assert.False(t, (&Booking{Status: StatusConfirmed, PaymentStatus: PaymentFullyPaid}).CanAcceptPayment(now))
	assert.False(t, (&Booking{Status: StatusPending, PaymentStatus: PaymentUnpaid}).CanAcceptPayment(now))
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ParseBookingStatus("in_progress")
	assert.False(t, ok)
}
