package nakama

const (
	// RpcVariants lists every registered variant with its metadata.
	RpcVariants = "whist_variants"
	// RpcNewHand starts a game against bot seats and deals its first hand.
	RpcNewHand = "whist_new_hand"
	// RpcAct applies one action to a sealed table.
	RpcAct = "whist_act"
	// RpcSettingsGet and RpcSettingsSet read and write a player's table settings.
	RpcSettingsGet = "whist_settings_get"
	RpcSettingsSet = "whist_settings_set"
)

// Storage locations of per-user table settings and the active table.
const (
	settingsCollection = "whist"
	settingsKey        = "table_settings_v1"
	tableCollection    = "whist_tables"
	tableKey           = "active_v1"
)

// Runtime env keys read at init.
const (
	envConfigPath     = "whist_config"
	envTicketSecret   = "whist_ticket_secret"
	defaultConfigPath = "data/whist_config.json"
	defaultIssuer     = "whist"
)

// gRPC status codes returned through runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
	codeUnauthenticated    = 16
)

// botPrefix marks roster entries held by auto-decision agents.
const botPrefix = "bot:"
