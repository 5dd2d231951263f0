package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// NoopCache используется, когда Redis выключен: всегда промах
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(context.Context, int64, time.Time, domain.ServiceType) ([]types.TimeString, bool, error) {
	return nil, false, nil
}

func (NoopCache) Version(context.Context, int64, time.Time) (string, error) {
	return "", nil
}

func (NoopCache) Set(context.Context, int64, time.Time, domain.ServiceType, string, []types.TimeString) error {
	return nil
}

func (NoopCache) InvalidateDate(context.Context, int64, time.Time) error {
	return nil
}

func (NoopCache) InvalidateWorkshop(context.Context, int64) error {
	return nil
}
