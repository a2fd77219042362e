package domain

// LocationSample is one GPS reading from a technician's device. Samples are
// ephemeral; only the latest sample per tech has dispatch significance.
type LocationSample struct {
	TechID       int64    `json:"techID"`
	ContractorID string   `json:"contractorID"`
	JobID        int64    `json:"jobID"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Accuracy     *float64 `json:"accuracy,omitempty"` // meters
	Heading      *float64 `json:"heading,omitempty"`  // degrees, 0-360
	Speed        *float64 `json:"speed,omitempty"`    // m/s
	Timestamp    int64    `json:"timestamp"`          // client epoch milliseconds
}

// GeolocationErrorCode classifies a client-side geolocation failure. None of
// these terminate a tracking session; the session resumes on the next good sample.
type GeolocationErrorCode string

const (
	GeoErrPermissionDenied    GeolocationErrorCode = "permission_denied"
	GeoErrPositionUnavailable GeolocationErrorCode = "position_unavailable"
	GeoErrTimeout             GeolocationErrorCode = "timeout"
)

func (c GeolocationErrorCode) IsValid() bool {
	switch c {
	case GeoErrPermissionDenied, GeoErrPositionUnavailable, GeoErrTimeout:
		return true
	}
	return false
}

// LocationMessage is the queue payload produced by the ingest endpoint: either
// a sample or a geolocation error, never both.
type LocationMessage struct {
	Sample    *LocationSample      `json:"sample,omitempty"`
	ErrorCode GeolocationErrorCode `json:"errorCode,omitempty"`
	TechID    int64                `json:"techID"`
	JobID     int64                `json:"jobID"`
}

type TrackingEventType string

const (
	EventLocationUpdate TrackingEventType = "location_update"
	EventStatusChange   TrackingEventType = "status_change"
	EventAdvisory       TrackingEventType = "advisory"
	EventETAUpdate      TrackingEventType = "eta_update"
)

// TrackingEvent is what the tracker publishes to dispatcher-facing views.
type TrackingEvent struct {
	Type           TrackingEventType `json:"type"`
	ContractorID   string            `json:"contractorID"`
	JobID          int64             `json:"jobID"`
	TechID         int64             `json:"techID"`
	Sample         *LocationSample   `json:"sample,omitempty"`
	FromStatus     FieldStatus       `json:"fromStatus,omitempty"`
	ToStatus       FieldStatus       `json:"toStatus,omitempty"`
	Advisory       string            `json:"advisory,omitempty"`
	DistanceMeters *float64          `json:"distanceMeters,omitempty"`
	ETAMinutes     *float64          `json:"etaMinutes,omitempty"`
}
