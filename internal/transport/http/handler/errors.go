package handler

const (
	errInternalServer     = "Internal server error"
	errDuplicateEmail     = "Email already registered"
	errInvalidCredentials = "Invalid credentials"
	errUserNotFound       = "User not found"
)
