package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"claresys/pkg/config"
	"claresys/pkg/model"
)

type MaintenanceClient struct {
	http *HTTPClient
}

func NewMaintenanceClient(http *HTTPClient) *MaintenanceClient {
	return &MaintenanceClient{http: http}
}

func (c *MaintenanceClient) CreateTicket(ctx context.Context, payload model.TicketCreate) (*model.MaintenanceTicket, error) {
	resp, err := c.http.POST(ctx, "/api/v1/maintenance/tickets", payload)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ticket model.MaintenanceTicket
	if err := resp.DecodeJSON(&ticket); err != nil {
		return nil, fmt.Errorf("could not decode ticket:\n%s\n%w", resp.ToString(), err)
	}
	return &ticket, nil
}

func (c *MaintenanceClient) ListTickets(ctx context.Context, filter model.TicketFilter) (*model.TicketList, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.ClassroomID != "" {
		q.Set("classroom_id", filter.ClassroomID)
	}
	if filter.Priority != "" {
		q.Set("priority", filter.Priority)
	}
	q.Set("limit", strconv.Itoa(config.NormalizePaginationLimit(filter.Limit)))
	if offset := config.NormalizeOffset(filter.Offset); offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}

	path := "/api/v1/maintenance/tickets"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var list model.TicketList
	if err := resp.DecodeJSON(&list); err != nil {
		return nil, fmt.Errorf("could not decode ticket list:\n%s\n%w", resp.ToString(), err)
	}
	return &list, nil
}

func (c *MaintenanceClient) GetTicket(ctx context.Context, ticketID string) (*model.MaintenanceTicket, error) {
	resp, err := c.http.GET(ctx, "/api/v1/maintenance/tickets/"+url.PathEscape(ticketID))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ticket model.MaintenanceTicket
	if err := resp.DecodeJSON(&ticket); err != nil {
		return nil, fmt.Errorf("could not decode ticket:\n%s\n%w", resp.ToString(), err)
	}
	return &ticket, nil
}

func (c *MaintenanceClient) UpdateTicket(ctx context.Context, ticketID string, patch model.TicketUpdate) (*model.MaintenanceTicket, error) {
	resp, err := c.http.PATCH(ctx, "/api/v1/maintenance/tickets/"+url.PathEscape(ticketID), patch)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var ticket model.MaintenanceTicket
	if err := resp.DecodeJSON(&ticket); err != nil {
		return nil, fmt.Errorf("could not decode ticket:\n%s\n%w", resp.ToString(), err)
	}
	return &ticket, nil
}
