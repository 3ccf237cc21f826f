package config

const (
	EnvAPIBaseURL     = "CLARESYS_API_BASE_URL"
	EnvRequestTimeout = "CLARESYS_REQUEST_TIMEOUT"

	EnvMQTTURL         = "CLARESYS_MQTT_URL"
	EnvMQTTTopicPrefix = "CLARESYS_MQTT_TOPIC_PREFIX"
	EnvMQTTKeepAlive   = "CLARESYS_MQTT_KEEPALIVE"
	EnvMQTTReconnect   = "CLARESYS_MQTT_RECONNECT"

	EnvTokenFile = "CLARESYS_TOKEN_FILE"
	EnvLogLevel  = "CLARESYS_LOG_LEVEL"
	EnvLogFormat = "CLARESYS_LOG_FORMAT"
)
