package model

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// TerminalStatus reports whether a booking request can no longer transition.
func TerminalStatus(status string) bool {
	switch status {
	case StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// BookingRequest is a vehicle owner's claim against a service slot.
type BookingRequest struct {
	BookingRequestID int         `json:"bookingRequestId"`
	UserID           int         `json:"userId"`
	VehicleID        int         `json:"vehicleId"`
	ServiceSlot      ServiceSlot `json:"serviceSlot"`
	BookingDate      string      `json:"bookingDate"`
	Status           string      `json:"status"`
	CreatedAt        string      `json:"createdAt,omitempty"`
	UpdatedAt        string      `json:"updatedAt,omitempty"`
}

// BookingInput is the create payload for a booking request.
type BookingInput struct {
	ServiceSlotID int    `json:"serviceSlotId" validate:"required,gt=0"`
	VehicleID     int    `json:"vehicleId" validate:"required,gt=0"`
	BookingDate   string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
}

// Page mirrors the paginated envelope the booking backend returns inside
// results[0].
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}
