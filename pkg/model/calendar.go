package model

import "time"

// CalendarEvent is the view-model both calendar screens (manager slots,
// admin booking export) render: one event per slot or request, spanning
// serviceDate+startTime to serviceDate+endTime.
type CalendarEvent struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color,omitempty"`
}
