package get_swap_options

// Request модель запроса вариантов обмена
type Request struct {
	BookingID  int64
	EmployeeID int64
}
