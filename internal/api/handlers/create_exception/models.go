package create_exception

import (
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules/models"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	Date              string  `json:"date"`               // "2025-12-31"
	IsClosed          *bool   `json:"isClosed,omitempty"` // по умолчанию true
	SpecialOpenTime   *string `json:"specialOpenTime,omitempty"`
	SpecialCloseTime  *string `json:"specialCloseTime,omitempty"`
	Reason            *string `json:"reason,omitempty"`
	IsRecurringYearly bool    `json:"isRecurringYearly,omitempty"`
}

func (r *CreateExceptionRequest) ToServiceRequest(workshopID, userID int64) (*models.CreateExceptionRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	isClosed := true
	if r.IsClosed != nil {
		isClosed = *r.IsClosed
	}

	return &models.CreateExceptionRequest{
		WorkshopID:        workshopID,
		UserID:            userID,
		Date:              date,
		IsClosed:          isClosed,
		SpecialOpenTime:   r.SpecialOpenTime,
		SpecialCloseTime:  r.SpecialCloseTime,
		Reason:            r.Reason,
		IsRecurringYearly: r.IsRecurringYearly,
	}, nil
}
