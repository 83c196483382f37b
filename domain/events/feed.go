package events

import "time"

// FeedEventType enumerates the server-pushed event kinds the dashboard
// understands. Anything outside this set is skipped at decode time.
type FeedEventType string

const (
	TypeDefectDetected      FeedEventType = "DEFECT_DETECTED"
	TypeLotAwaitingApproval FeedEventType = "LOT_AWAITING_APPROVAL"
	TypeLotApproved         FeedEventType = "LOT_APPROVED"
	TypeDeviceOffline       FeedEventType = "DEVICE_OFFLINE"
)

// Fallback values used when a payload field is missing or not a string.
const (
	FallbackUnknown       = "Unknown"
	FallbackNotApplicable = "N/A"
)

// RawFeedEvent is a feed event as stored: a type tag plus an untyped payload.
// Decoding into the closed variant set happens exactly once, at the boundary.
type RawFeedEvent struct {
	ID        int64
	ClientID  int64
	Type      string
	Payload   map[string]any
	CreatedAt time.Time
}

// FeedEvent is the closed set of decoded feed event variants.
type FeedEvent interface {
	EventType() FeedEventType
	OccurredAt() time.Time
}

// DefectDetected is raised by edge devices when an inspection flags a garment.
type DefectDetected struct {
	DefectType    string
	GarmentSerial string
	LotID         string
	At            time.Time
}

func (e DefectDetected) EventType() FeedEventType { return TypeDefectDetected }
func (e DefectDetected) OccurredAt() time.Time    { return e.At }

// LotAwaitingApproval is raised when a lot finishes inspection and needs sign-off.
type LotAwaitingApproval struct {
	LotID    string
	StyleRef string
	At       time.Time
}

func (e LotAwaitingApproval) EventType() FeedEventType { return TypeLotAwaitingApproval }
func (e LotAwaitingApproval) OccurredAt() time.Time    { return e.At }

// LotApproved is raised when a lot is signed off.
type LotApproved struct {
	LotID string
	At    time.Time
}

func (e LotApproved) EventType() FeedEventType { return TypeLotApproved }
func (e LotApproved) OccurredAt() time.Time    { return e.At }

// DeviceOffline is raised when an edge device misses its heartbeat window.
type DeviceOffline struct {
	DeviceName string
	At         time.Time
}

func (e DeviceOffline) EventType() FeedEventType { return TypeDeviceOffline }
func (e DeviceOffline) OccurredAt() time.Time    { return e.At }

// Decode narrows a raw event into its typed variant. The second return is
// false for unrecognized types; that is a defined skip, not an error.
// Missing or non-string payload fields degrade to fallback text.
func Decode(raw RawFeedEvent) (FeedEvent, bool) {
	switch FeedEventType(raw.Type) {
	case TypeDefectDetected:
		return DefectDetected{
			DefectType:    stringField(raw.Payload, "defectType", FallbackUnknown),
			GarmentSerial: stringField(raw.Payload, "garmentSerial", FallbackNotApplicable),
			LotID:         stringField(raw.Payload, "lotId", ""),
			At:            raw.CreatedAt,
		}, true
	case TypeLotAwaitingApproval:
		return LotAwaitingApproval{
			LotID:    stringField(raw.Payload, "lotId", ""),
			StyleRef: stringField(raw.Payload, "styleRef", FallbackUnknown),
			At:       raw.CreatedAt,
		}, true
	case TypeLotApproved:
		return LotApproved{
			LotID: stringField(raw.Payload, "lotId", ""),
			At:    raw.CreatedAt,
		}, true
	case TypeDeviceOffline:
		return DeviceOffline{
			DeviceName: stringField(raw.Payload, "deviceName", FallbackUnknown),
			At:         raw.CreatedAt,
		}, true
	}
	return nil, false
}

// stringField extracts a string payload value, degrading to fallback.
func stringField(payload map[string]any, key, fallback string) string {
	if payload == nil {
		return fallback
	}
	v, ok := payload[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}
