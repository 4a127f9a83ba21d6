package rest

import "time"

const (
	adminKeyHeader = "X-Admin-Key"
	uploadField    = "file"

	defaultMaxUploadBytes = 64 << 20
	uploadMemoryBytes     = 8 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	healthTimeout     = 2 * time.Second
)
