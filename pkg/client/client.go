package client

import (
	"time"
)

// Client bundles every collaborator behind one shared transport so they all
// carry the same token source and 401 handling.
type Client struct {
	HTTP *HTTPClient

	Auth         *AuthClient
	Classrooms   *ClassroomClient
	Bookings     *BookingClient
	BookingQuery *BookingQueryClient
	Users        *UserClient
	Maintenance  *MaintenanceClient
	AuditLogs    *AuditLogClient
	Reports      *ReportClient
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	http := NewHTTPClient(baseURL, timeout, opts...)
	return &Client{
		HTTP:         http,
		Auth:         NewAuthClient(http),
		Classrooms:   NewClassroomClient(http),
		Bookings:     NewBookingClient(http),
		BookingQuery: NewBookingQueryClient(http),
		Users:        NewUserClient(http),
		Maintenance:  NewMaintenanceClient(http),
		AuditLogs:    NewAuditLogClient(http),
		Reports:      NewReportClient(http),
	}
}
