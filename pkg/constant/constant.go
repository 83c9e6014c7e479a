package constant

const (
	RoleRep     = "rep"
	RoleManager = "manager"

	DefaultRole = RoleRep

	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionPastDue = "past_due"

	DefaultSubscriptionStatus = SubscriptionTrial

	// SessionCookieName is the cookie checked when no bearer header is present.
	SessionCookieName = "session_token"
)
