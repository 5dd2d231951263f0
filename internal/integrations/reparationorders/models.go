package reparationorders

// CreateOrderRequest тело запроса на создание заказа-наряда
type CreateOrderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WorkshopID  int64  `json:"workshopId"`
}

// OrderResponse ответ сервиса заказ-нарядов
type OrderResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	WorkshopID  int64  `json:"workshopId"`
	Status      string `json:"status"`
}

// ErrorResponse модель ошибки от сервиса заказ-нарядов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
