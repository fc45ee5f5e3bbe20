package check_employee_swap

// Request модель запроса на проверку обмена
type Request struct {
	BookingID  int64 // Бронирование, которое хотят передать
	EmployeeID int64 // Сотрудник-кандидат
}
