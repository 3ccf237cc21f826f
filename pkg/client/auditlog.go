package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"claresys/pkg/config"
	"claresys/pkg/model"
)

type AuditLogClient struct {
	http *HTTPClient
}

func NewAuditLogClient(http *HTTPClient) *AuditLogClient {
	return &AuditLogClient{http: http}
}

func (c *AuditLogClient) List(ctx context.Context, filter model.AuditLogFilter) (*model.AuditLogList, error) {
	q := url.Values{}
	if filter.From != "" {
		q.Set("from", filter.From)
	}
	if filter.To != "" {
		q.Set("to", filter.To)
	}
	if filter.Service != "" {
		q.Set("service", filter.Service)
	}
	if filter.ActorUserID != "" {
		q.Set("actor_user_id", filter.ActorUserID)
	}
	if filter.Action != "" {
		q.Set("action", filter.Action)
	}
	if filter.ResourceID != "" {
		q.Set("resource_id", filter.ResourceID)
	}
	if filter.CorrelationID != "" {
		q.Set("correlation_id", filter.CorrelationID)
	}
	q.Set("limit", strconv.Itoa(config.NormalizePaginationLimit(filter.Limit)))
	if offset := config.NormalizeOffset(filter.Offset); offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}

	path := "/api/v1/audit-logs/"
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

	var list model.AuditLogList
	if err := resp.DecodeJSON(&list); err != nil {
		return nil, fmt.Errorf("could not decode audit log list:\n%s\n%w", resp.ToString(), err)
	}
	return &list, nil
}

func (c *AuditLogClient) Get(ctx context.Context, logID string) (*model.AuditLog, error) {
	resp, err := c.http.GET(ctx, "/api/v1/audit-logs/"+url.PathEscape(logID))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var entry model.AuditLog
	if err := resp.DecodeJSON(&entry); err != nil {
		return nil, fmt.Errorf("could not decode audit log:\n%s\n%w", resp.ToString(), err)
	}
	return &entry, nil
}
