package matchstats

import "strconv"

var tonPlusFortyKeys = [...]string{"140", "141", "160", "171"}

// BuildRecords turns one match payload into a record per roster row.
// Missing secondary rows leave that player's derived fields empty.
func BuildRecords(ref MatchRef, payload MatchPayload) []PlayerStatRecord {
	records := make([]PlayerStatRecord, 0, len(payload.Roster))
	for i, entry := range payload.Roster {
		record := PlayerStatRecord{
			Key:         ref.For(entry.PlayerName),
			LegsPlayed:  entry.GamesPlayed,
			LegsWon:     entry.GamesWon,
			Average:     entry.Average,
			ProfileLink: entry.ProfileLink,
		}

		if i < len(payload.Distributions) {
			applyDistribution(&record, payload.Distributions[i])
		}
		if i < len(payload.FirstNine) && payload.FirstNine[i] != nil {
			v := *payload.FirstNine[i]
			record.FirstNineAverage = &v
		}
		if i < len(payload.Checkouts) && payload.Checkouts[i] != nil {
			c := *payload.Checkouts[i]
			record.Checkout = &c
		}

		records = append(records, record)
	}
	return records
}

// DuplicateRosterName returns the first player name listed more than once.
// Two rows with one name would share a record key.
func DuplicateRosterName(roster []RosterEntry) (string, bool) {
	seen := make(map[string]struct{}, len(roster))
	for _, entry := range roster {
		if _, ok := seen[entry.PlayerName]; ok {
			return entry.PlayerName, true
		}
		seen[entry.PlayerName] = struct{}{}
	}
	return "", false
}

func applyDistribution(record *PlayerStatRecord, dist ScoreDistribution) {
	record.Count180s = dist["180"]

	tonForty := record.Count180s
	for _, key := range tonPlusFortyKeys {
		tonForty += dist[key]
	}
	record.Count140Plus = tonForty
	record.Count100Plus = dist["100"] + tonForty
	record.HighestScore = HighestScore(dist)
}

// HighestScore is the largest numeric key of dist, 0 for an empty map.
// Keys that are not integers are ignored.
func HighestScore(dist ScoreDistribution) int {
	highest := 0
	for key := range dist {
		score, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if score > highest {
			highest = score
		}
	}
	return highest
}
