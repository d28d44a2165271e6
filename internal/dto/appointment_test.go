package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func TestAppointmentDTOCarriesCalendarDate(t *testing.T) {
	ap := models.Appointment{
		ID:        9,
		Date:      time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "09:30",
		Price:     decimal.RequireFromString("45.5"),
		Status:    "Pending",
	}

	raw, err := json.Marshal(FromAppointment(&ap))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "2026-03-05", body["date"])
	assert.Equal(t, "09:00", body["startTime"])
	assert.Equal(t, "45.5", body["price"])
	assert.Nil(t, body["confirmedAt"])
}

func TestFromAppointmentsNeverNil(t *testing.T) {
	assert.NotNil(t, FromAppointments(nil))
	assert.NotNil(t, FromWindows(nil))
}
