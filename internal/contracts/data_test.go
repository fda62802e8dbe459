package contracts

import (
	"encoding/json"
	"testing"
)

func TestMatch_HasWinner(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{
			name:  "rikishi1 won",
			match: Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 11},
			want:  true,
		},
		{
			name:  "rikishi2 won",
			match: Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 22},
			want:  true,
		},
		{
			name:  "not yet fought",
			match: Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 0},
			want:  false,
		},
		{
			name:  "winner not in bout",
			match: Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 33},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.HasWinner(); got != tt.want {
				t.Errorf("HasWinner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch_Loser(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  int
	}{
		{"rikishi1 won", Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 11}, 22},
		{"rikishi2 won", Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 22}, 11},
		{"no winner", Match{Rikishi1ID: 11, Rikishi2ID: 22, WinnerID: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.Loser(); got != tt.want {
				t.Errorf("Loser() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatch_JSONRoundTrip(t *testing.T) {
	m := Match{
		ID:             "202301-1-1-100-200",
		BashoID:        "202301",
		Division:       "Makuuchi",
		Day:            1,
		Rikishi1ID:     100,
		Rikishi2ID:     200,
		WinnerID:       200,
		Kimarite:       "oshidashi",
		Rikishi1Height: 185.0,
		Rikishi1Weight: 152.5,
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Match
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got != m {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, m)
	}
}
