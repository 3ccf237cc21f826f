package model

import "encoding/json"

type AuditLog struct {
	ID            string          `json:"_id"`
	Timestamp     string          `json:"timestamp,omitempty"`
	Service       string          `json:"service,omitempty"`
	ActorUserID   string          `json:"actor_user_id,omitempty"`
	Action        string          `json:"action,omitempty"`
	ResourceID    string          `json:"resource_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

type AuditLogList struct {
	Total int64      `json:"total"`
	Items []AuditLog `json:"items"`
}

type AuditLogFilter struct {
	From          string
	To            string
	Service       string
	ActorUserID   string
	Action        string
	ResourceID    string
	CorrelationID string
	Limit         int
	Offset        int64
}
