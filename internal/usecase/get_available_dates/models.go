package get_available_dates

import "time"

// Request модель запроса на получение дней месяца со свободными слотами
type Request struct {
	ActivityID    int64     // ID активности
	ReferenceDate time.Time // Любая дата нужного месяца
	Participants  *int      // Число участников, по умолчанию минимум активности
}

// Response дни месяца по возрастанию.
// Approximate всегда true: день попадает в список по отсутствию пересечений
// с бронированиями самого сотрудника, без правил совместного ведения групп,
// поэтому подробная сетка слотов дня может оказаться полностью занятой.
type Response struct {
	ActivityID  int64
	Month       time.Time // Первый день месяца
	Dates       []time.Time
	Approximate bool
}
