// internal/status/constants.go
package status

// Link health codes.
// These values are reported verbatim on /status and /metrics.

// HealthUnknown represents the boot state before the first connect attempt completes.
const HealthUnknown uint16 = 0

// HealthOK represents a meter that answered the last poll cycle.
const HealthOK uint16 = 1

// HealthError represents a failed connect or poll cycle.
const HealthError uint16 = 2

// ErrorCodeGeneric is reported when an error carries no device code.
const ErrorCodeGeneric uint16 = 1

// HealthName returns a lower-case label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "invalid"
	}
}
