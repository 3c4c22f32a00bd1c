package constants

import "time"

// Session and context keys
const (
	SessionCookieName      = "clinic_session"
	ContextKeyUserID       = "user_id"
	ContextKeyOrganization = "organization"
	ContextKeyMembership   = "membership"
)

// Validation limits
const (
	MinPasswordLength         = 8
	MinOrganizationNameLength = 2
)

// Invite code parameters. The alphabet excludes glyphs that are easy to
// misread when the code is shared verbally (I, O, 0, 1).
const (
	InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	InviteCodeLength   = 8
	InviteCodeTTL      = 24 * time.Hour
)
