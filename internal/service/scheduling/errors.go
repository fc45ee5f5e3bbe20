package scheduling

import "errors"

var (
	// ErrNoEmployeeAvailable ни один сотрудник не может взять бронирование
	ErrNoEmployeeAvailable = errors.New("scheduling: no employee available")

	// ErrInvalidCandidate кандидат без активности или с некорректным интервалом
	ErrInvalidCandidate = errors.New("scheduling: invalid candidate")

	// ErrLoadDay ошибка загрузки расписания сотрудника
	ErrLoadDay = errors.New("scheduling: failed to load employee day")

	// ErrLoadEmployees ошибка загрузки списка сотрудников
	ErrLoadEmployees = errors.New("scheduling: failed to load employees")
)
