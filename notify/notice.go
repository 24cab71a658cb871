package notify

import "time"

// Level is the severity of an operator-facing notice.
type Level int

const (
	// LevelInfo is routine, non-actionable information.
	LevelInfo Level = iota
	// LevelWarn flags something an operator should look at soon.
	LevelWarn
	// LevelByzantine flags observed peer misbehavior (reserved: no v1
	// code path emits this yet, see EventByzantine in
	// transfer/mediatedtransfer/events.go).
	LevelByzantine
)

// Notice is a single operator-facing notification.
type Notice struct {
	Level Level
	Info  interface{}
	At    time.Time
}

func newNotice(level Level, info interface{}, at time.Time) *Notice {
	return &Notice{Level: level, Info: info, At: at}
}
