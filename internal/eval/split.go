package eval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// ErrMissingBashoDate means a match references a basho that is absent
// from the date index. That points at an ingestion inconsistency, so it
// is surfaced immediately and never retried.
var ErrMissingBashoDate = errors.New("basho missing from date index")

// SortMatches returns the matches in chronological order: primary key
// is the basho start date from the index, secondary key is the day of
// the basho. The sort is stable and the input slice is left untouched.
//
// This is the one ordering that never leaks future outcomes into past
// ratings, so every sequential pass starts here regardless of the order
// the store returned.
func SortMatches(matches []contracts.Match, dates map[string]string) ([]contracts.Match, error) {
	for _, m := range matches {
		if _, ok := dates[m.BashoID]; !ok {
			return nil, fmt.Errorf("match %s: basho %s: %w", m.ID, m.BashoID, ErrMissingBashoDate)
		}
	}

	sorted := make([]contracts.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := dates[sorted[i].BashoID], dates[sorted[j].BashoID]
		if di != dj {
			return di < dj
		}
		return sorted[i].Day < sorted[j].Day
	})
	return sorted, nil
}

// Split partitions matches by basho start date: strictly before the
// cutoff goes to train, the cutoff date or later goes to test. Relative
// order is preserved within each partition and every match lands in
// exactly one of them.
func Split(matches []contracts.Match, dates map[string]string, splitDate string) (train, test []contracts.Match, err error) {
	train = make([]contracts.Match, 0, len(matches))
	test = make([]contracts.Match, 0)
	for _, m := range matches {
		date, ok := dates[m.BashoID]
		if !ok {
			return nil, nil, fmt.Errorf("match %s: basho %s: %w", m.ID, m.BashoID, ErrMissingBashoDate)
		}
		if date < splitDate {
			train = append(train, m)
		} else {
			test = append(test, m)
		}
	}
	return train, test, nil
}
