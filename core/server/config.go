package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// RunTimeoutSeconds bounds a single plan or apply request.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"300"`
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
