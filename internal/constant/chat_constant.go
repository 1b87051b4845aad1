package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	DefaultRoleId = "orchestrator"

	// Title derived from the first user message.
	SessionTitleMaxRunes = 30
	SessionTitleEllipsis = "..."

	SessionStorageKeyPrefix    = "sessions_"
	PreferenceStorageKeyPrefix = "preferences_"

	OfflineModeNotice = "*[Offline Mode: Backend unavailable]*\n\n"

	// Formatted with the original transport error.
	SystemErrorTemplate = "⚠️ **System Error**: Could not connect to backend AND mock fallback failed. (%s)"
)

// Where an assistant message came from.
const (
	ResponseSourceRemote    = "remote"
	ResponseSourceSimulated = "simulated"
	ResponseSourceFallback  = "fallback"
	ResponseSourceError     = "error"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
