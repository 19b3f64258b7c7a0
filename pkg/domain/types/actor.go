package types

// System accounts whose actions are never admin activity.
const (
	AutoModerator  = "AutoModerator"
	PlatformSystem = "reddit"
)

func IsSystemAccount(name string) bool {
	return name == AutoModerator || name == PlatformSystem
}

// Organizational admin accounts. Actions by these render as a bare
// organizational name rather than a user link. The redacted-name variant is
// normalized to Anti-Evil Operations, which performs redacted actions.
const (
	AntiEvilOperations = "Anti-Evil Operations"
	RedditLegal        = "Reddit Legal"
	RedactedAdmin      = "[ Redacted ]"
)

// AdminAccount returns the normalized organizational display name for the
// given actor and whether the actor is one of the known organizational
// admin accounts.
func AdminAccount(name string) (string, bool) {
	switch name {
	case AntiEvilOperations, RedactedAdmin:
		return AntiEvilOperations, true
	case RedditLegal:
		return RedditLegal, true
	}
	return "", false
}
