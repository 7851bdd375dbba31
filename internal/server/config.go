package server

import "time"

type Config struct {
	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string

	// LimiterMax requests per LimiterWindow per client address.
	LimiterMax    int
	LimiterWindow time.Duration
}
