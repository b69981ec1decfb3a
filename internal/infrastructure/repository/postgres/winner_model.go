package postgres

import "time"

type eventWinnerTableModel struct {
	ScopeID     string    `db:"scope_id"`
	EventName   string    `db:"event_name"`
	EventNumber int       `db:"event_number"`
	PlayerName  string    `db:"player_name"`
	Qualifying  bool      `db:"qualifying"`
	RecordedAt  time.Time `db:"recorded_at"`
}
