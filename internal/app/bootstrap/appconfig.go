// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level, env); AppConfig
// is everything specific to the waitlist service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max driver connection pool size
	MongoMinPoolSize uint64 // Min driver connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// BaseURL is this service's externally visible origin; OAuth
	// callbacks registered with the providers are derived from it.
	BaseURL string // e.g., "https://api.example.com" or "http://localhost:8080"

	// SiteURL is the landing page origin the browser is sent back to
	// after login and logout.
	SiteURL string // e.g., "https://example.com" or "http://localhost:3000"

	// OAuth provider credentials. A provider with empty credentials is
	// mounted but answers every login with a redirect to the error page.
	GoogleClientID       string
	GoogleClientSecret   string
	LinkedInClientID     string
	LinkedInClientSecret string
}
