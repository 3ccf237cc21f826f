package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"claresys/pkg/config"
	"claresys/pkg/model"
)

type BookingQueryClient struct {
	http *HTTPClient
}

func NewBookingQueryClient(http *HTTPClient) *BookingQueryClient {
	return &BookingQueryClient{http: http}
}

func (c *BookingQueryClient) List(ctx context.Context, filter model.BookingFilter) (*model.BookingList, error) {
	q := url.Values{}
	if filter.UserID != "" {
		q.Set("user_id", filter.UserID)
	}
	if filter.ClassroomID != "" {
		q.Set("classroom_id", filter.ClassroomID)
	}
	if filter.StatusFilter != "" {
		q.Set("status_filter", filter.StatusFilter)
	}
	q.Set("limit", strconv.Itoa(config.NormalizePaginationLimit(filter.Limit)))
	if offset := config.NormalizeOffset(filter.Offset); offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}

	path := "/api/v1/queries/bookings"
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

	var list model.BookingList
	if err := resp.DecodeJSON(&list); err != nil {
		return nil, fmt.Errorf("could not decode booking list:\n%s\n%w", resp.ToString(), err)
	}
	return &list, nil
}

func (c *BookingQueryClient) Get(ctx context.Context, bookingID string) (*model.BookingView, error) {
	resp, err := c.http.GET(ctx, "/api/v1/queries/bookings/"+url.PathEscape(bookingID))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var view model.BookingView
	if err := resp.DecodeJSON(&view); err != nil {
		return nil, fmt.Errorf("could not decode booking view:\n%s\n%w", resp.ToString(), err)
	}
	return &view, nil
}
