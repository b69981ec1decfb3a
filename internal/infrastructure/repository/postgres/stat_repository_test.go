package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestStatRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	repo := NewStatRepository(db)
	repo.now = func() time.Time { return now }

	record := matchstats.PlayerStatRecord{
		Key:          matchstats.Key{ScopeID: "club-a", EventName: "Event 1", MatchID: "m-1", PlayerName: "Ann"},
		LegsPlayed:   5,
		LegsWon:      3,
		Average:      88.4,
		Count180s:    1,
		Count140Plus: 4,
		Count100Plus: 9,
		HighestScore: 180,
	}

	args := []driver.Value{
		"club-a", "Event 1", "m-1", "Ann",
		5, 3, 88.4, nil,
		1, 4, 9, 180,
		nil, nil, nil, nil, nil,
		"", now, now,
	}
	mock.ExpectExec(`INSERT INTO player_match_stats \(scope_id,event_name,match_id,player_name,.*\) VALUES \(\$1,.*\$20\) ON CONFLICT \(scope_id, event_name, match_id, player_name\) DO UPDATE SET`).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatRepository_UpsertWrapsDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatRepository(db)

	mock.ExpectExec(`INSERT INTO player_match_stats`).WillReturnError(assert.AnError)

	err := repo.Upsert(context.Background(), matchstats.PlayerStatRecord{
		Key: matchstats.Key{ScopeID: "club-a", EventName: "Event 1", MatchID: "m-1", PlayerName: "Ann"},
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "match=m-1")
}

func TestStatRepository_ListByScopeWithFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatRepository(db)

	created := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(playerMatchStatsSelectColumns).
		AddRow("club-a", "Event 1", "m-1", "Ann", 5, 3, 88.4, 101.5, 1, 4, 9, 180, 6, 3, 121, 44.5, "50.00%", "", created, created).
		AddRow("club-a", "Event 1", "m-2", "Ann", 4, 1, 80.0, nil, 0, 1, 5, 140, nil, nil, nil, nil, nil, "", created, created)

	mock.ExpectQuery(`SELECT .* FROM player_match_stats WHERE event_name = \$1 AND scope_id = \$2 ORDER BY event_name, match_id, player_name`).
		WithArgs("Event 1", "club-a").
		WillReturnRows(rows)

	got, err := repo.ListByScope(context.Background(), "club-a", matchstats.Filter{EventName: "Event 1"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].FirstNineAverage)
	assert.InDelta(t, 101.5, *got[0].FirstNineAverage, 1e-9)
	require.NotNil(t, got[0].Checkout)
	assert.Equal(t, 121, got[0].HighestFinish())

	assert.Nil(t, got[1].FirstNineAverage)
	assert.Nil(t, got[1].Checkout)
	assert.Equal(t, 140, got[1].HighestScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWinnerRepository_UpsertAndList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWinnerRepository(db)
	recorded := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO event_winners \(scope_id,event_name,event_number,player_name,qualifying,recorded_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) ON CONFLICT \(scope_id, event_name\) DO UPDATE SET event_number = EXCLUDED.event_number`).
		WithArgs("club-a", "Event 3", 3, "Ann", true, recorded).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT .* FROM event_winners WHERE scope_id = \$1 ORDER BY event_number, event_name`).
		WithArgs("club-a").
		WillReturnRows(sqlmock.NewRows(eventWinnerSelectColumns).
			AddRow("club-a", "Event 3", 3, "Ann", true, recorded))

	err := repo.UpsertWinner(context.Background(), qualification.EventWinner{
		ScopeID:     "club-a",
		EventName:   "Event 3",
		EventNumber: 3,
		PlayerName:  "Ann",
		Qualifying:  true,
		RecordedAt:  recorded,
	})
	require.NoError(t, err)

	winners, err := repo.ListWinners(context.Background(), "club-a")
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "Ann", winners[0].PlayerName)
	assert.True(t, winners[0].Qualifying)
	require.NoError(t, mock.ExpectationsWereMet())
}
