package types

// ActionKind is a moderation action name as delivered by the ModAction trigger.
type ActionKind string

const (
	ActionAcceptModeratorInvite ActionKind = "acceptmoderatorinvite"
	ActionAddModerator          ActionKind = "addmoderator"
	ActionRemoveModerator       ActionKind = "removemoderator"
	ActionReorderModerators     ActionKind = "reordermoderators"

	ActionRemoveLink    ActionKind = "removelink"
	ActionSpamLink      ActionKind = "spamlink"
	ActionRemoveComment ActionKind = "removecomment"
	ActionSpamComment   ActionKind = "spamcomment"
)

func (x ActionKind) String() string {
	return string(x)
}

// MutatesRoster reports whether the action changes the moderator list.
// The cached roster must be refreshed before any membership check that
// follows one of these.
func (x ActionKind) MutatesRoster() bool {
	switch x {
	case ActionAcceptModeratorInvite, ActionAddModerator,
		ActionRemoveModerator, ActionReorderModerators:
		return true
	}
	return false
}

// Removal reports whether the action removed content from the community.
// Only removals qualify for the mod-note annotation.
func (x ActionKind) Removal() bool {
	switch x {
	case ActionRemoveLink, ActionSpamLink, ActionRemoveComment, ActionSpamComment:
		return true
	}
	return false
}
