package model

// ServiceSlot is a bookable time window with finite capacity for a given
// date. availableSlots is owned by the booking backend; the portal only
// patches it optimistically after a successful booking.
type ServiceSlot struct {
	ServiceSlotID  int    `json:"serviceSlotId"`
	ServiceDate    string `json:"serviceDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// SlotInput is the create/update payload the slot service expects.
type SlotInput struct {
	ServiceDate string `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,clock_time"`
	EndTime     string `json:"endTime" validate:"required,clock_time"`
	Slots       int    `json:"slots" validate:"required,gt=0"`
}

// FullyBooked reports whether the slot has no remaining capacity.
func (s ServiceSlot) FullyBooked() bool {
	return s.AvailableSlots <= 0
}
