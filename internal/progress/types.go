package progress

import "time"

// PlayerProgress is the durable per-player record. JSON field names follow the
// sync wire format the game client speaks.
type PlayerProgress struct {
	PlayerID   string    `json:"userId"`
	Level      int       `json:"level"`
	TotalScore int       `json:"totalScore"`
	Served     []int     `json:"servedQuestions"`
	LastLogin  time.Time `json:"lastLogin"`
}

// SyncRequest carries one client progress update. Nil fields leave the stored
// value unchanged; level and score are absolute replacements, not deltas.
type SyncRequest struct {
	PlayerID         string
	Level            *int
	Score            *int
	SolvedQuestionID *int
}
