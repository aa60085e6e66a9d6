package globals

import "os"

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var JwtSecret = []byte(envOr("JWT_SECRET", "change_me_in_production"))

// QrSecret signs check-in QR payloads.
var QrSecret = []byte(envOr("QR_SECRET", "change_me_too"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
