package catalogservice

// Service модель услуги груминга из каталога
// Длительность услуги фиксирует интервал записи при создании:
// end = start + duration
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Active          bool    `json:"active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
