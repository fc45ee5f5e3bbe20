package scheduling

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// EmployeeDay снимок загрузки сотрудника на дату: бронирования и их активности.
// Снимок не обращается к хранилищу, поэтому один день можно проверить на много слотов подряд.
type EmployeeDay struct {
	EmployeeID int64
	Date       time.Time

	bookings   []*domain.Booking
	activities map[int64]*domain.Activity
}

// NewEmployeeDay собирает снимок из уже загруженных данных
func NewEmployeeDay(employeeID int64, date time.Time, bookings []*domain.Booking, activities map[int64]*domain.Activity) *EmployeeDay {
	if activities == nil {
		activities = make(map[int64]*domain.Activity)
	}
	return &EmployeeDay{
		EmployeeID: employeeID,
		Date:       date,
		bookings:   bookings,
		activities: activities,
	}
}

// Bookings неотмененные бронирования сотрудника за день
func (d *EmployeeDay) Bookings() []*domain.Booking {
	return d.bookings
}

// Activity активность бронирования из снимка
func (d *EmployeeDay) Activity(id int64) (*domain.Activity, bool) {
	a, ok := d.activities[id]
	return a, ok
}

// Overlapping бронирования, пересекающиеся с [start, end), кроме exclude
func (d *EmployeeDay) Overlapping(start, end types.TimeString, exclude *int64) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range d.bookings {
		if b.IsCancelled() {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result
}

// IsFree проверка только на пересечение с собственными бронированиями сотрудника
func (d *EmployeeDay) IsFree(start, end types.TimeString) bool {
	return len(d.Overlapping(start, end, nil)) == 0
}

// Assess решает, может ли сотрудник взять кандидата в дополнение к текущей загрузке
func (d *EmployeeDay) Assess(c Candidate) Verdict {
	overlapping := d.Overlapping(c.StartTime, c.EndTime, c.ExcludeBookingID)
	if len(overlapping) == 0 {
		return VerdictFree
	}

	if !c.Activity.HasCategory() {
		return VerdictNoCategory
	}

	total := c.Participants
	for _, b := range overlapping {
		activity, ok := d.activities[b.ActivityID]
		if !ok && b.ActivityID == c.Activity.ID {
			activity, ok = c.Activity, true
		}
		if !ok {
			return VerdictUnknownActivity
		}
		if !activity.SameCategoryAs(c.Activity) {
			return VerdictCategoryMismatch
		}
		if !activity.SameLocationAs(c.Activity) {
			return VerdictLocationMismatch
		}
		total += b.Participants
	}

	if total > c.Activity.Category.MaxParticipantsPerGuide {
		return VerdictOverCapacity
	}

	return VerdictShared
}
