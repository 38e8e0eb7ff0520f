package constants

// Centralized constants for env keys, routes, transport vocabulary and
// logging field names.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvConfigPath    = "GRIDARENA_CONFIG"
	EnvDBPath        = "GRIDARENA_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteSession     = "/session"
	RouteBoards      = "/boards"
	RouteBoardByName = "/boards/:name"
	RouteRooms       = "/rooms"
	RouteRoomJoin    = "/rooms/join"
	RouteLeaderboard = "/leaderboard"
	RouteRoomSocket  = "/rooms/:code/socket"
)

// Intents (client -> engine). The websocket envelope carries one of these in
// its "intent" field.
const (
	IntentShareCharacter  = "share-character"
	IntentLockRoom        = "lock-room"
	IntentUnlockRoom      = "unlock-room"
	IntentRemovePlayer    = "remove-player"
	IntentQuitGame        = "quit-game"
	IntentConfigureGame   = "configure-game"
	IntentReady           = "ready"
	IntentMove            = "move"
	IntentDebugMove       = "debug-move"
	IntentToggleDoor      = "toggle-door"
	IntentEndTurn         = "end-turn"
	IntentFightInit       = "fight-init"
	IntentFightAttack     = "fight-attack"
	IntentFightFlee       = "fight-flee"
	IntentToggleDebugMode = "toggle-debug-mode"

	// Synthesized by the transport layer when a socket drops, never sent by
	// clients directly.
	IntentDisconnectPlayer = "disconnect-player"
)

// Events (engine -> clients). The websocket envelope carries one of these in
// its "event" field.
const (
	EventRoomCreated        = "room-created"
	EventPlayerJoined       = "player-joined"
	EventPlayerList         = "player-list"
	EventRoomLocked         = "room-locked"
	EventRoomUnlocked       = "room-unlocked"
	EventPlayerRemoved      = "player-removed"
	EventPlayerDisconnected = "player-disconnected"
	EventAdminDisconnected  = "admin-disconnected"
	EventGameStarted        = "game-started"
	EventTurnChanged        = "turn-changed"
	EventMovementBroadcast  = "movement-broadcast"
	EventDoorChanged        = "door-changed"
	EventTimerTick          = "timer-tick"
	EventTurnEnded          = "turn-ended"
	EventDebugModeChanged   = "debug-mode-changed"
	EventFightInit          = "fight-init"
	EventFightTurnSwitched  = "fight-turn-switched"
	EventFightEnded         = "fight-ended"
	EventJournalEntry       = "journal-entry"
	EventError              = "error"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrNameRequired       = "Player name is required"
	ErrRoomNotFound       = "Room not found"
	ErrRoomLocked         = "Room is locked"
	ErrRoomFull           = "Room is full"
	ErrBoardNotFound      = "Board not found"
	ErrFailedCreateRoom   = "Failed to create room"
	ErrFailedFetchBoards  = "Failed to fetch boards"
	ErrFailedFetchLeaders = "Failed to fetch leaderboard"
	ErrAuthRequired       = "Authentication required"
	ErrInvalidSession     = "Invalid session"
)

// Logging field names
const (
	LogFieldAddr     = "addr"
	LogFieldRoom     = "access_code"
	LogFieldPlayer   = "player_id"
	LogFieldBoard    = "board"
	LogFieldIntent   = "intent"
	LogFieldPosition = "position"
	LogFieldReason   = "reason"
)
