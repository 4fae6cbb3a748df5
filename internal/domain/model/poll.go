package model

// Poll is one week's authoritative top-25 ranking: team ids in rank order,
// position 0 holding rank 1. Tiering logic reads the most recent Poll with
// Week strictly before the week being computed.
type Poll struct {
	Season  int      `json:"season"`
	Week    int      `json:"week"`
	TeamIDs []string `json:"team_ids"`
}

// RankOf returns the 1-based rank of teamID in the poll, or 0 when the
// team is unranked.
func (p Poll) RankOf(teamID string) int {
	for i, id := range p.TeamIDs {
		if id == teamID {
			return i + 1
		}
	}
	return 0
}
