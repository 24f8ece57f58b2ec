package constants

const (
	// Context and session keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyID       = "id"

	SessionCookieName = "donation_session"

	MinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	MaxPasswordLength = 72

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Donations of this many servings or more always go through a volunteer.
	VolunteerPickupThreshold = 50

	MinorUnitsPerMajor = 100

	SignatureHeader         = "X-Signature"
	RazorpaySignatureHeader = "X-Razorpay-Signature"

	FundCacheTTLSeconds = 60
)
