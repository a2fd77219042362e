package domain

type FieldStatus string

const (
	StatusScheduled  FieldStatus = "SCHEDULED"
	StatusEnRoute    FieldStatus = "EN_ROUTE"
	StatusArrived    FieldStatus = "ARRIVED"
	StatusWorking    FieldStatus = "WORKING"
	StatusPaused     FieldStatus = "PAUSED"
	StatusWrappingUp FieldStatus = "WRAPPING_UP"
	StatusCompleted  FieldStatus = "COMPLETED"
	StatusCancelled  FieldStatus = "CANCELLED"
)

// FieldStatusMeta is display metadata for a status, loaded once and injected
// where needed rather than referenced as ambient globals.
type FieldStatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var fieldStatusMeta = map[FieldStatus]FieldStatusMeta{
	StatusScheduled:  {Label: "Scheduled", Color: "#6b7280"},
	StatusEnRoute:    {Label: "En route", Color: "#2563eb"},
	StatusArrived:    {Label: "Arrived", Color: "#0891b2"},
	StatusWorking:    {Label: "Working", Color: "#16a34a"},
	StatusPaused:     {Label: "Paused", Color: "#ca8a04"},
	StatusWrappingUp: {Label: "Wrapping up", Color: "#9333ea"},
	StatusCompleted:  {Label: "Completed", Color: "#15803d"},
	StatusCancelled:  {Label: "Cancelled", Color: "#dc2626"},
}

func (s FieldStatus) Meta() FieldStatusMeta {
	return fieldStatusMeta[s]
}

func (s FieldStatus) IsValid() bool {
	_, ok := fieldStatusMeta[s]
	return ok
}

// IsTerminal reports whether the status ends the field lifecycle.
// CANCELLED is reachable from any non-terminal status.
func (s FieldStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsOnSite reports whether the crew is expected to be at the job site,
// which is when a departure advisory is meaningful.
func (s FieldStatus) IsOnSite() bool {
	return s == StatusArrived || s == StatusWorking || s == StatusPaused
}
