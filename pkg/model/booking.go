package model

// BookingCreate is the command-side request body. StartTime and EndTime carry
// the canonical naive-local wire format YYYY-MM-DDTHH:MM:00; the backend
// reads them as local wall-clock time, so no offset may ever be appended.
type BookingCreate struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	ClassroomID string `json:"classroom_id" validate:"required,uuid4"`
	StartTime   string `json:"start_time" validate:"required,len=19"`
	EndTime     string `json:"end_time" validate:"required,len=19"`
	Subject     string `json:"subject,omitempty" validate:"omitempty,min=2,max=255"`
}

// BookingAck is the command-side acknowledgement for create and cancel.
type BookingAck struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BookingView is the read-model projection served by the query engine. The
// backend sets extra=allow, so unknown fields may appear and the identifier
// is booking_id rather than id.
type BookingView struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id,omitempty"`
	ClassroomID string `json:"classroom_id,omitempty"`
	Status      string `json:"status,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

type BookingList struct {
	Total int64         `json:"total"`
	Items []BookingView `json:"items"`
}

type BookingFilter struct {
	UserID       string
	ClassroomID  string
	StatusFilter string
	Limit        int
	Offset       int64
}
