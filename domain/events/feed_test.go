package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_DefectDetected(t *testing.T) {
	now := time.Now()
	raw := RawFeedEvent{
		ID:       1,
		ClientID: 1,
		Type:     "DEFECT_DETECTED",
		Payload: map[string]any{
			"defectType":    "stain",
			"garmentSerial": "G123",
			"lotId":         "L1",
		},
		CreatedAt: now,
	}

	decoded, ok := Decode(raw)
	require.True(t, ok)

	defect, ok := decoded.(DefectDetected)
	require.True(t, ok)
	assert.Equal(t, "stain", defect.DefectType)
	assert.Equal(t, "G123", defect.GarmentSerial)
	assert.Equal(t, "L1", defect.LotID)
	assert.Equal(t, now, defect.OccurredAt())
}

func TestDecode_UnknownTypeIsSkippedNotError(t *testing.T) {
	decoded, ok := Decode(RawFeedEvent{Type: "SOMETHING_NEW", Payload: map[string]any{}})

	assert.False(t, ok)
	assert.Nil(t, decoded)
}

func TestDecode_MissingFieldsDegradeToFallbacks(t *testing.T) {
	decoded, ok := Decode(RawFeedEvent{
		Type:    "DEFECT_DETECTED",
		Payload: map[string]any{"lotId": "L9"},
	})
	require.True(t, ok)

	defect := decoded.(DefectDetected)
	assert.Equal(t, FallbackUnknown, defect.DefectType)
	assert.Equal(t, FallbackNotApplicable, defect.GarmentSerial)
	assert.Equal(t, "L9", defect.LotID)
}

func TestDecode_NonStringFieldsDegradeToFallbacks(t *testing.T) {
	decoded, ok := Decode(RawFeedEvent{
		Type: "DEFECT_DETECTED",
		Payload: map[string]any{
			"defectType":    42,
			"garmentSerial": true,
		},
	})
	require.True(t, ok)

	defect := decoded.(DefectDetected)
	assert.Equal(t, FallbackUnknown, defect.DefectType)
	assert.Equal(t, FallbackNotApplicable, defect.GarmentSerial)
}

func TestDecode_NilPayloadDoesNotPanic(t *testing.T) {
	decoded, ok := Decode(RawFeedEvent{Type: "DEVICE_OFFLINE"})
	require.True(t, ok)

	offline := decoded.(DeviceOffline)
	assert.Equal(t, FallbackUnknown, offline.DeviceName)
}

func TestDecode_LotAwaitingApproval(t *testing.T) {
	decoded, ok := Decode(RawFeedEvent{
		Type:    "LOT_AWAITING_APPROVAL",
		Payload: map[string]any{"lotId": "L7", "styleRef": "STY-100"},
	})
	require.True(t, ok)

	awaiting := decoded.(LotAwaitingApproval)
	assert.Equal(t, "L7", awaiting.LotID)
	assert.Equal(t, "STY-100", awaiting.StyleRef)
	assert.Equal(t, TypeLotAwaitingApproval, awaiting.EventType())
}
