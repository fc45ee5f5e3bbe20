package domain

// Scheduling constants
const (
	SlotStepMinutes         = 30 // Шаг сетки слотов
	PaymentDeadlineHours    = 24 // Срок оплаты после подтверждения
	MinAdvanceBookingHours  = 2  // Минимум времени до начала бронирования
	MaxAdvanceBookingDays   = 90 // Максимум дней вперед для бронирования
	MaxNotesLength          = 500
	MaxGuestNameLength      = 100
	MaxGuestPhoneLength     = 30
	DefaultParticipantCount = 1
	locationCoordinateDelta = 0.0001 // ~11 м
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonTerminalStatuses статусы, из которых бронирование еще может быть отменено
var NonTerminalStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
