package config

import "time"

const (
	// MinDBConns matches the pool's minimum connection count
	MinDBConns = 2

	// MinTickInterval guards against accidentally hammering the database
	MinTickInterval = time.Second
)

// Example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

const (
	ErrMsgAPIKeyRequired = "API_KEY environment variable must be set for security"
)
