package model

type MaintenanceTicket struct {
	TicketID         string  `json:"ticket_id"`
	ClassroomID      string  `json:"classroom_id"`
	ReportedByUserID string  `json:"reported_by_user_id"`
	AssignedToUserID *string `json:"assigned_to_user_id"`
	Type             string  `json:"type"`
	Priority         string  `json:"priority"`
	Status           string  `json:"status"`
	Description      string  `json:"description"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	ResolvedAt       *string `json:"resolved_at"`
}

type TicketCreate struct {
	ClassroomID      string `json:"classroom_id" validate:"required,uuid4"`
	ReportedByUserID string `json:"reported_by_user_id" validate:"required,uuid4"`
	Type             string `json:"type" validate:"required"`
	Priority         string `json:"priority" validate:"required"`
	Description      string `json:"description" validate:"required,min=3"`
}

type TicketUpdate struct {
	AssignedToUserID *string `json:"assigned_to_user_id,omitempty"`
	Type             *string `json:"type,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	Description      *string `json:"description,omitempty"`
	Status           *string `json:"status,omitempty"`
}

type TicketList struct {
	Total int64               `json:"total"`
	Items []MaintenanceTicket `json:"items"`
}

type TicketFilter struct {
	Status      string
	ClassroomID string
	Priority    string
	Limit       int
	Offset      int64
}
