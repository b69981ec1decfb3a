package qualification

import (
	"errors"
	"testing"
)

func TestSeries(t *testing.T) {
	t.Parallel()

	s := DefaultSeries()
	tests := []struct {
		number     int
		wantErr    error
		qualifying bool
	}{
		{number: 0, wantErr: ErrEventNumberOutOfRange},
		{number: 1, qualifying: true},
		{number: 6, qualifying: true},
		{number: 7, qualifying: false},
		{number: 8, wantErr: ErrEventNumberOutOfRange},
	}

	for _, tc := range tests {
		err := s.Validate(tc.number)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("Validate(%d) error = %v, want %v", tc.number, err, tc.wantErr)
		}
		if tc.wantErr == nil && s.IsQualifying(tc.number) != tc.qualifying {
			t.Fatalf("IsQualifying(%d) = %v, want %v", tc.number, !tc.qualifying, tc.qualifying)
		}
	}
}

func TestQualifiedPlayers(t *testing.T) {
	t.Parallel()

	got := QualifiedPlayers([]EventWinner{
		{PlayerName: "a", Qualifying: true},
		{PlayerName: "b", Qualifying: false},
	})
	if _, ok := got["a"]; !ok {
		t.Fatalf("expected a qualified")
	}
	if _, ok := got["b"]; ok {
		t.Fatalf("expected b not qualified")
	}
}
