package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// generateSlots перебирает старты в каждом рабочем окне с шагом SlotStepMinutes
// и помечает слот доступным, если хотя бы один сотрудник может его взять.
// Окна разных сотрудников дают одинаковые слоты, они схлопываются по {start, end}.
func generateSlots(
	windows []*domain.WorkWindow,
	days []*scheduling.EmployeeDay,
	activity *domain.Activity,
	date time.Time,
	participants int,
) []domain.TimeSlot {
	seen := make(map[domain.SlotKey]struct{})
	slots := make([]domain.TimeSlot, 0)

	for _, window := range windows {
		for _, start := range window.CandidateStarts(activity.DurationMinutes, domain.SlotStepMinutes) {
			candidate, err := scheduling.NewCandidate(activity, date, start, participants)
			if err != nil {
				continue
			}

			slot := domain.TimeSlot{StartTime: candidate.StartTime, EndTime: candidate.EndTime}
			if _, ok := seen[slot.Key()]; ok {
				continue
			}
			seen[slot.Key()] = struct{}{}

			slot.Available = anyEmployeeCanHandle(days, candidate)
			slots = append(slots, slot)
		}
	}

	domain.SortSlots(slots)
	return slots
}

func anyEmployeeCanHandle(days []*scheduling.EmployeeDay, candidate scheduling.Candidate) bool {
	for _, day := range days {
		if day.Assess(candidate).OK() {
			return true
		}
	}
	return false
}
