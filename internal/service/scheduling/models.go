package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// Candidate бронирование, которое сотрудник должен взять поверх текущей загрузки
type Candidate struct {
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Activity     *domain.Activity
	Participants int

	// ExcludeBookingID не учитывается в загрузке сотрудника:
	// переназначаемое или передаваемое при обмене бронирование не конфликтует само с собой
	ExcludeBookingID *int64
}

// NewCandidate собирает кандидата для активности, конец вычисляется по длительности
func NewCandidate(activity *domain.Activity, date time.Time, start types.TimeString, participants int) (Candidate, error) {
	if activity == nil {
		return Candidate{}, fmt.Errorf("%w: activity is required", ErrInvalidCandidate)
	}

	end, err := start.AddMinutes(activity.DurationMinutes)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	return Candidate{
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		Activity:     activity,
		Participants: participants,
	}, nil
}

// CandidateFromBooking описывает существующее бронирование как кандидата без учета его самого
func CandidateFromBooking(b *domain.Booking, activity *domain.Activity) Candidate {
	id := b.ID
	return Candidate{
		Date:             b.BookingDate,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Activity:         activity,
		Participants:     b.Participants,
		ExcludeBookingID: &id,
	}
}

// Excluding возвращает копию кандидата, игнорирующую бронирование с указанным ID
func (c Candidate) Excluding(bookingID int64) Candidate {
	c.ExcludeBookingID = &bookingID
	return c
}

func (c Candidate) validate() error {
	if c.Activity == nil {
		return fmt.Errorf("%w: activity is required", ErrInvalidCandidate)
	}
	if !c.StartTime.IsBefore(c.EndTime) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidCandidate, c.StartTime, c.EndTime)
	}
	return nil
}

// Verdict результат проверки кандидата на сотруднике
type Verdict string

const (
	// VerdictFree пересечений нет
	VerdictFree Verdict = "free"
	// VerdictShared пересечения совместимы и укладываются в лимит группы
	VerdictShared Verdict = "shared"
	// VerdictNoCategory у активности кандидата нет категории, совместное ведение невозможно
	VerdictNoCategory Verdict = "no_category"
	// VerdictCategoryMismatch пересекающееся бронирование другой категории
	VerdictCategoryMismatch Verdict = "category_mismatch"
	// VerdictLocationMismatch пересекающееся бронирование в другом месте
	VerdictLocationMismatch Verdict = "location_mismatch"
	// VerdictOverCapacity суммарное число участников превышает лимит категории
	VerdictOverCapacity Verdict = "over_capacity"
	// VerdictUnknownActivity пересекающееся бронирование ссылается на неизвестную активность
	VerdictUnknownActivity Verdict = "unknown_activity"
)

// OK возвращает true, если сотрудник может взять кандидата
func (v Verdict) OK() bool {
	return v == VerdictFree || v == VerdictShared
}
