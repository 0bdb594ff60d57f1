package validation

import "regexp"

var (
	// emailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// uuidRegex validates UUID format
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// verifyCodeRegex validates the 6-digit verification code format
	verifyCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidUUID checks if the string is a valid UUID format
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}

// IsValidVerifyCode checks if the string looks like a 6-digit code
func IsValidVerifyCode(code string) bool {
	return verifyCodeRegex.MatchString(code)
}

// IsValidUsername checks the username length bounds
func IsValidUsername(username string) bool {
	return len(username) >= 2 && len(username) <= 20
}

// IsValidPassword checks the password length bound
func IsValidPassword(password string) bool {
	return len(password) >= 6 && len(password) <= 128
}
