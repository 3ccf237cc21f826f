package client

import (
	"context"
	"fmt"
	"net/url"

	"claresys/pkg/model"
)

// BookingClient talks to the command side of the booking collaborator.
// Reads go through BookingQueryClient against the projection instead.
type BookingClient struct {
	http *HTTPClient
}

func NewBookingClient(http *HTTPClient) *BookingClient {
	return &BookingClient{http: http}
}

func (c *BookingClient) Create(ctx context.Context, payload *model.BookingCreate) (*model.BookingAck, error) {
	resp, err := c.http.POST(ctx, "/api/v1/bookings/", payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ack model.BookingAck
	if err := resp.DecodeJSON(&ack); err != nil {
		return nil, fmt.Errorf("could not decode booking ack:\n%s\n%w", resp.ToString(), err)
	}
	return &ack, nil
}

func (c *BookingClient) Cancel(ctx context.Context, bookingID string) (*model.BookingAck, error) {
	resp, err := c.http.DELETE(ctx, "/api/v1/bookings/"+url.PathEscape(bookingID))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ack model.BookingAck
	if err := resp.DecodeJSON(&ack); err != nil {
		return nil, fmt.Errorf("could not decode booking ack:\n%s\n%w", resp.ToString(), err)
	}
	return &ack, nil
}
