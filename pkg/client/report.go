package client

import (
	"context"
	"net/url"
)

// ReportClient fetches rendered PDF reports. The payload is returned as raw
// bytes for the caller to persist or stream.
type ReportClient struct {
	http *HTTPClient
}

func NewReportClient(http *HTTPClient) *ReportClient {
	return &ReportClient{http: http}
}

func (c *ReportClient) ClassroomReport(ctx context.Context, classroomID, from, to string) ([]byte, error) {
	return c.fetch(ctx, "/api/v1/reports/classroom/"+url.PathEscape(classroomID), from, to)
}

func (c *ReportClient) UserReport(ctx context.Context, userID, from, to string) ([]byte, error) {
	return c.fetch(ctx, "/api/v1/reports/user/"+url.PathEscape(userID), from, to)
}

func (c *ReportClient) fetch(ctx context.Context, path, from, to string) ([]byte, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
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
	return resp.Body, nil
}
