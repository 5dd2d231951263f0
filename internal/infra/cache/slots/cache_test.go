package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

func TestKeys(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "slots:7:2025-03-10:diagnostic", Key(7, date, domain.ServiceDiagnostic))
	assert.Equal(t, "slots:7:2025-03-10:*", DatePattern(7, date))
	assert.Equal(t, "slots:7:*", WorkshopPattern(7))
	assert.Equal(t, "slotsver:7", WorkshopVersionKey(7))
	assert.Equal(t, "slotsver:7:2025-03-10", DateVersionKey(7, date))
	// ключи версий не попадают под шаблоны удаления
	assert.NotContains(t, DateVersionKey(7, date), "slots:")
}

func TestVersionToken(t *testing.T) {
	assert.Equal(t, "0.0", versionToken([]interface{}{nil, nil}))
	assert.Equal(t, "3.0", versionToken([]interface{}{"3", nil}))
	assert.Equal(t, "3.12", versionToken([]interface{}{"3", "12"}))
}

func TestNoopCache_AlwaysMisses(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	version, err := c.Version(ctx, 1, date)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 1, date, domain.ServiceConsultation, version, nil))

	slots, ok, err := c.Get(ctx, 1, date, domain.ServiceConsultation)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, slots)

	assert.NoError(t, c.InvalidateDate(ctx, 1, date))
	assert.NoError(t, c.InvalidateWorkshop(ctx, 1))
}
