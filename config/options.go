package config

import "time"

var (
	PageRequestTimeout   = 10 * time.Second
	SearchRequestTimeout = 10 * time.Second
)
