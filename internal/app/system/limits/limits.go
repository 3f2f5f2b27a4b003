// internal/app/system/limits/limits.go
package limits

// Request body size limits. Oversized submissions are cut off before
// parsing to bound memory per request.
const (
	// MaxPageContentSize caps site page edit submissions (HTML content).
	MaxPageContentSize = 1 << 20 // 1 MB

	// MaxFormSize caps ordinary form submissions (login, task forms,
	// account forms).
	MaxFormSize = 64 << 10 // 64 KB
)
