package reader

// Config holds configuration for the reading-list endpoint.
type Config struct {
	// BaseURL is the service root; the reading-list path is appended to it.
	BaseURL string `mapstructure:"base_url" default:"https://www.google.com/reader"`
	// ClientID is sent as the client query parameter.
	ClientID string `mapstructure:"client_id" default:"feedme"`
	// AuthToken is the GoogleLogin auth token. Acquiring it is out of scope.
	AuthToken string `mapstructure:"auth_token" default:""`
	// ItemsPerFetch is the page size requested with n.
	ItemsPerFetch int `mapstructure:"items_per_fetch" default:"50"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"feedme/1.0"`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
