// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port               string
	GCPCreds           string
	FirestoreProjectID string
	FirebaseProjectID  string

	// Branding logo storage
	BrandingLogoBucket string

	// Optional Postgres mirror for reporting deployments
	DatabaseURL string

	// SendGrid: direct key, or a Secret Manager secret id holding it
	SendGridAPIKey    string
	SendGridKeySecret string
	ReminderFromEmail string

	// Disney sub-brand bucketing: "collapse" (default) or "envivo"
	DisneySplitPolicy string

	// CORS origin of the vendor console frontend
	ConsoleOrigin string
}

// Load reads the environment. Every value has a workable default except the
// project id, which shared.Infra validates.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port:               getenvDefault("PORT", "8080"),
		GCPCreds:           os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID: getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirebaseProjectID:  getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		BrandingLogoBucket: os.Getenv("BRANDING_LOGO_BUCKET"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridKeySecret:  getenvDefault("SENDGRID_API_KEY_SECRET", "sendgrid-api-key"),
		ReminderFromEmail:  getenvDefault("REMINDER_FROM_EMAIL", "avisos@revendo.app"),
		DisneySplitPolicy:  getenvDefault("DISNEY_SPLIT_POLICY", "collapse"),
		ConsoleOrigin:      getenvDefault("CONSOLE_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
