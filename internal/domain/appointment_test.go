package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

func TestServiceType_StandardDuration(t *testing.T) {
	tests := []struct {
		serviceType ServiceType
		expected    int
	}{
		{ServiceConsultation, 30},
		{ServiceBasicMaintenance, 60},
		{ServiceDiagnostic, 90},
		{ServiceMajorRepair, 240},
		{ServiceFullService, 480},
		{ServiceEmergency, 120},
		{ServiceType("unknown"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.serviceType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.serviceType.StandardDuration())
			assert.Equal(t, tt.expected != 0, tt.serviceType.IsValid())
		})
	}
}

func TestAppointment_Transitions(t *testing.T) {
	tests := []struct {
		status        AppointmentStatus
		canConfirm    bool
		canStart      bool
		canComplete   bool
		canCancel     bool
		canReschedule bool
		canNoShow     bool
	}{
		{StatusPending, true, false, false, true, true, false},
		{StatusConfirmed, false, true, false, true, true, true},
		{StatusRescheduled, true, true, false, true, true, false},
		{StatusInProgress, false, false, true, false, false, false},
		{StatusCompleted, false, false, false, false, false, false},
		{StatusCancelled, false, false, false, false, false, false},
		{StatusNoShow, false, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.canConfirm, a.CanConfirm(), "confirm")
			assert.Equal(t, tt.canStart, a.CanStart(), "start")
			assert.Equal(t, tt.canComplete, a.CanComplete(), "complete")
			assert.Equal(t, tt.canCancel, a.CanCancel(), "cancel")
			assert.Equal(t, tt.canReschedule, a.CanReschedule(), "reschedule")
			assert.Equal(t, tt.canNoShow, a.CanMarkNoShow(), "no-show")
		})
	}
}

func TestAppointment_Overlaps(t *testing.T) {
	existing := &Appointment{StartTime: types.MustTimeString("09:00"), DurationMinutes: 60}

	assert.True(t, existing.Overlaps(types.MustTimeString("09:30"), 60))
	assert.True(t, existing.Overlaps(types.MustTimeString("08:30"), 60))
	assert.True(t, existing.Overlaps(types.MustTimeString("08:00"), 180))
	assert.False(t, existing.Overlaps(types.MustTimeString("10:00"), 60), "touching end is not an overlap")
	assert.False(t, existing.Overlaps(types.MustTimeString("08:00"), 60), "touching start is not an overlap")
}

func TestAppointment_Occupies(t *testing.T) {
	assert.True(t, (&Appointment{IsActive: true, Status: StatusConfirmed}).Occupies())
	assert.False(t, (&Appointment{IsActive: true, Status: StatusCancelled}).Occupies())
	assert.False(t, (&Appointment{IsActive: false, Status: StatusPending}).Occupies())
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusRescheduled.IsTerminal())
	assert.False(t, AppointmentStatus("archived").IsValid())
}
