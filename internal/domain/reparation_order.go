package domain

// ReparationOrder is a repair order owned by the external reparation service
type ReparationOrder struct {
	ID          int64
	Name        string
	Description string
	WorkshopID  int64
	Status      string
}
