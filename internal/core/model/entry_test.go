package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineSortIsStable(t *testing.T) {
	timeline := Timeline{
		{Time: 5, Author: "c", Text: "third"},
		{Time: 1, Author: "a", Text: "first"},
		{Time: 5, Author: "b", Text: "second"},
	}
	timeline.Sort()

	require.Len(t, timeline, 3)
	assert.Equal(t, "a", timeline[0].Author)
	// Entries sharing a timestamp keep their source order
	assert.Equal(t, "c", timeline[1].Author)
	assert.Equal(t, "b", timeline[2].Author)
}

func TestTimelineActiveRange(t *testing.T) {
	timeline := Timeline{
		{Time: 0.0, Author: "a", Text: "hi"},
		{Time: 5.0, Author: "b", Text: "yo"},
		{Time: 10.0, Author: "c", Text: "hey"},
		{Time: 30.0, Author: "d", Text: "late"},
	}

	tests := []struct {
		name        string
		query       float64
		window      float64
		wantAuthors []string
	}{
		{
			name:        "only_first_active",
			query:       0.5,
			window:      17,
			wantAuthors: []string{"a"},
		},
		{
			name:        "first_three_active",
			query:       10.0,
			window:      17,
			wantAuthors: []string{"a", "b", "c"},
		},
		{
			name:        "lower_bound_inclusive",
			query:       17.0,
			window:      17,
			wantAuthors: []string{"a", "b", "c"},
		},
		{
			name:        "first_expired",
			query:       20.5,
			window:      17,
			wantAuthors: []string{"b", "c"},
		},
		{
			name:        "upper_bound_inclusive",
			query:       30.0,
			window:      17,
			wantAuthors: []string{"c", "d"},
		},
		{
			name:        "before_everything",
			query:       -1.0,
			window:      17,
			wantAuthors: nil,
		},
		{
			name:        "after_everything",
			query:       100.0,
			window:      17,
			wantAuthors: nil,
		},
		{
			name:        "gap_between_entries",
			query:       28.0,
			window:      1,
			wantAuthors: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := timeline.ActiveRange(tt.query, tt.window)

			var authors []string
			for _, e := range active {
				authors = append(authors, e.Author)
			}
			assert.Equal(t, tt.wantAuthors, authors)
		})
	}
}

func TestTimelineActiveRangeMatchesLinearScan(t *testing.T) {
	timeline := Timeline{
		{Time: 0}, {Time: 0}, {Time: 1.5}, {Time: 2}, {Time: 2},
		{Time: 7.25}, {Time: 9}, {Time: 13}, {Time: 13}, {Time: 40},
	}

	for _, query := range []float64{-5, 0, 1, 2, 6.9, 7.25, 13, 20, 41, 100} {
		for _, window := range []float64{0, 1, 5, 17, 1000} {
			active := timeline.ActiveRange(query, window)

			var want Timeline
			for _, e := range timeline {
				if e.Time >= query-window && e.Time <= query {
					want = append(want, e)
				}
			}
			require.Equal(t, len(want), len(active),
				"query=%v window=%v", query, window)
			for i := range want {
				assert.Equal(t, want[i].Time, active[i].Time)
			}
		}
	}
}

func TestTimelineActiveRangeEmptyTimeline(t *testing.T) {
	var timeline Timeline
	assert.Empty(t, timeline.ActiveRange(10, 17))
}
