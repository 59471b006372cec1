package database

import "time"

// Interaction kinds.
const (
	KindMessage     = "message"
	KindInlineQuery = "inline_query"
)

// Interaction is one handled update. Command is empty for unmatched text and
// inline queries.
type Interaction struct {
	ID        int64     `db:"id"`
	UpdateID  int64     `db:"update_id"`
	Kind      string    `db:"kind"`
	Command   string    `db:"command"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CommandCount is the number of interactions recorded for one command.
type CommandCount struct {
	Command string `db:"command"`
	Count   int64  `db:"count"`
}
