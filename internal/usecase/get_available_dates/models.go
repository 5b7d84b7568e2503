package get_available_dates

import "time"

// Request модель запроса доступных дат
type Request struct {
	BusinessID int64
	LocationID *int64
	ResourceID *int64
	Count      int // 0 - значение по умолчанию
}

// Response модель ответа со списком дат по возрастанию
type Response struct {
	BusinessID int64
	Dates      []time.Time
}
