package model

const (
	NotificationBookingRequest  = "BOOKING_REQUEST"
	NotificationBookingApproved = "BOOKING_APPROVED"
	NotificationBookingRejected = "BOOKING_REJECTED"
	NotificationBookingCanceled = "BOOKING_CANCELLED"
)

type Notification struct {
	NotificationID   int    `json:"notificationId"`
	Title            string `json:"title"`
	Body             string `json:"body"`
	NotificationType string `json:"notificationType"`
	UserID           int    `json:"userId"`
	BookingID        int    `json:"bookingId"`
	CreatedAt        string `json:"createdAt"`
	Viewed           bool   `json:"viewed"`
}
