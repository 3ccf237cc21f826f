package config

import "time"

const (
	DefaultAPIBaseURL = "http://localhost:8000"

	// DefaultRequestTimeout is the ceiling for every collaborator call.
	DefaultRequestTimeout = 15 * time.Second

	DefaultMQTTURL         = "tcp://localhost:1883"
	DefaultMQTTTopicPrefix = "claresys"
	DefaultMQTTKeepAlive   = 30 * time.Second
	DefaultMQTTReconnect   = 1 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultPaginationLimit = 100
)
