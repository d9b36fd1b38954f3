package match

// Result is the outcome of a mutating match operation. Operations return a
// Result instead of an error so callers can surface the message directly to
// players without inspecting controller state.
type Result int

const (
	ResultSuccess Result = iota
	ResultGameRunning
	ResultGameStopped
	ResultGameInWorld
	ResultNotEnoughPlayers
	ResultRegeneratingWorld
	ResultTooManyPlayers
)

var resultMessages = map[Result]string{
	ResultSuccess:           "Successful!",
	ResultGameRunning:       "The game is currently running!",
	ResultGameStopped:       "The game is not running!",
	ResultGameInWorld:       "The game is in the same world!",
	ResultNotEnoughPlayers:  "Not enough players!",
	ResultRegeneratingWorld: "The game world is regenerating!",
	ResultTooManyPlayers:    "Too many players!",
}

// Message returns the fixed human-readable text for this result.
func (r Result) Message() string {
	if msg, ok := resultMessages[r]; ok {
		return msg
	}
	return "Unknown result"
}

// Ok reports whether the operation succeeded.
func (r Result) Ok() bool {
	return r == ResultSuccess
}
