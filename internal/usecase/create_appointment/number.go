package create_appointment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

var appointmentNumberPattern = regexp.MustCompile(`^APP-\d{6}-\d{4}$`)

// newAppointmentNumber формирует номер вида APP-YYMMDD-NNNN
func newAppointmentNumber(date time.Time) string {
	return fmt.Sprintf("APP-%s-%04d", date.Format("060102"), rand.IntN(10000))
}

// generateNumber подбирает номер, которого ещё нет в хранилище
func (uc *UseCase) generateNumber(ctx context.Context, now time.Time) (string, error) {
	for attempt := 1; attempt <= domain.AppointmentNumberMaxAttempts; attempt++ {
		number := uc.numberGenerator(now)

		exists, err := uc.appointmentRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("%w: generateNumber - exists check: %v", ErrInternal, err)
		}
		if !exists {
			return number, nil
		}
		uc.logger.Warn("CreateAppointment: number %s already taken, attempt %d", number, attempt)
	}

	return "", ErrNumberGenerationExhausted
}
