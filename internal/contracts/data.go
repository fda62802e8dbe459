package contracts

// Match is a single bout between two rikishi with a recorded winner.
// Records are immutable once loaded; the order of rikishi1/rikishi2 is
// whatever the source reported and is never symmetrized.
type Match struct {
	ID         string `json:"id"`
	BashoID    string `json:"basho_id"`
	Division   string `json:"division"`
	Day        int    `json:"day"`
	Rikishi1ID int    `json:"rikishi1_id"`
	Rikishi2ID int    `json:"rikishi2_id"`
	WinnerID   int    `json:"winner_id"`
	Kimarite   string `json:"kimarite,omitempty"`

	// Measurements recorded for the basho the bout belongs to.
	// Zero when no measurement is on file.
	Rikishi1Height float64 `json:"rikishi1_height,omitempty"`
	Rikishi1Weight float64 `json:"rikishi1_weight,omitempty"`
	Rikishi2Height float64 `json:"rikishi2_height,omitempty"`
	Rikishi2Weight float64 `json:"rikishi2_weight,omitempty"`
}

// HasWinner reports whether the recorded winner is one of the two rikishi.
// Upcoming bouts come through the API with winner id 0.
func (m *Match) HasWinner() bool {
	return m.WinnerID != 0 && (m.WinnerID == m.Rikishi1ID || m.WinnerID == m.Rikishi2ID)
}

// Loser returns the rikishi id that did not win, or 0 when the winner
// is not part of this bout.
func (m *Match) Loser() int {
	switch m.WinnerID {
	case m.Rikishi1ID:
		return m.Rikishi2ID
	case m.Rikishi2ID:
		return m.Rikishi1ID
	default:
		return 0
	}
}

// Basho is a single tournament. The id is the YYYYMM form used by the
// sumo-api, dates are ISO calendar dates (string-comparable).
type Basho struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Rikishi is a competitor's master record.
type Rikishi struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	DebutDate string `json:"debut_date,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// BanzukeEntry is one rikishi's rank on a basho's banzuke.
type BanzukeEntry struct {
	BashoID   string `json:"basho_id"`
	RikishiID int    `json:"rikishi_id"`
	Rank      string `json:"rank"`
	Division  string `json:"division"`
}

// Measurement is a rikishi's recorded height/weight for one basho.
type Measurement struct {
	RikishiID int     `json:"rikishi_id"`
	BashoID   string  `json:"basho_id"`
	HeightCm  float64 `json:"height_cm"`
	WeightKg  float64 `json:"weight_kg"`
}
