package petservice

// Pet модель питомца из PetService
type Pet struct {
	ID      int64   `json:"id"`
	OwnerID int64   `json:"owner_id"`
	Name    string  `json:"name"`
	Breed   string  `json:"breed"`
	Weight  float64 `json:"weight"`
	Notes   *string `json:"notes,omitempty"`
}

// CreatePetRequest запрос на создание питомца
// Используется диалоговым сценарием, когда у клиента ещё нет питомцев
type CreatePetRequest struct {
	OwnerID int64   `json:"owner_id"`
	Name    string  `json:"name"`
	Breed   string  `json:"breed"`
	Weight  float64 `json:"weight"`
	Notes   *string `json:"notes,omitempty"`
}

// ErrorResponse модель ошибки от PetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
