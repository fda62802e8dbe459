package jobs

import (
	"testing"
	"time"

	"github.com/wplohrmann/sumo/internal/scheduler"
)

var _ scheduler.Job = (*BashoSyncJob)(nil)

func TestCurrentBashoID(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2023-01-01", "202301"},
		{"2023-01-31", "202301"},
		{"2023-02-15", "202301"},
		{"2023-08-22", "202307"},
		{"2023-11-12", "202311"},
		{"2023-12-31", "202311"},
	}

	for _, tt := range tests {
		now, err := time.Parse("2006-01-02", tt.now)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.now, err)
		}
		if got := currentBashoID(now); got != tt.want {
			t.Errorf("currentBashoID(%s) = %s, want %s", tt.now, got, tt.want)
		}
	}
}
