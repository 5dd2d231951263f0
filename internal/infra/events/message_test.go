package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/logger"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	a := &domain.Appointment{
		ID:                15,
		AppointmentNumber: "APP-250310-0042",
		ClientID:          3,
		WorkshopID:        7,
		AppointmentDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:         types.MustTimeString("10:00"),
		EndTime:           types.MustTimeString("11:30"),
		DurationMinutes:   90,
		ServiceType:       domain.ServiceDiagnostic,
		Status:            domain.StatusPending,
	}

	msg := NewMessage(AppointmentCreated, a, now)

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, AppointmentCreated, msg.Type)
	assert.Equal(t, time.UTC, msg.OccurredAt.Location())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "appointment.created", decoded["type"])

	appointment := decoded["appointment"].(map[string]interface{})
	assert.Equal(t, "2025-03-12", appointment["appointmentDate"])
	assert.Equal(t, "10:00", appointment["startTime"])
	assert.Equal(t, "diagnostic", appointment["serviceType"])
	assert.NotContains(t, appointment, "cancellationReason")
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(logger.NewNop())
	assert.NoError(t, p.Publish(context.Background(), AppointmentConfirmed, &domain.Appointment{ID: 1}))
	assert.NoError(t, p.Close())
}
