package realtime

import "fmt"

// Topic layout shared with the backend publishers. The prefix is
// configurable so several deployments can share one broker.

func ClassroomBookingsTopic(prefix, classroomID string) string {
	return fmt.Sprintf("%s/classrooms/%s/bookings", prefix, classroomID)
}

func BookingStatusTopic(prefix, bookingID string) string {
	return fmt.Sprintf("%s/bookings/%s/status", prefix, bookingID)
}

func UserNotificationsTopic(prefix, userID string) string {
	return fmt.Sprintf("%s/users/%s/notifications", prefix, userID)
}

func EventsTopic(prefix, eventType string) string {
	return fmt.Sprintf("%s/events/%s", prefix, eventType)
}
