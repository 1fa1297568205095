package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

func spans(windows []domain.AvailabilityWindow) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.Start.Format(domain.TimeFormat) + "-" + w.End.Format(domain.TimeFormat)
	}
	return out
}

func TestBuildWindows(t *testing.T) {
	tests := []struct {
		name   string
		blocks []*domain.AvailabilityBlock
		want   []string
	}{
		{
			name:   "single",
			blocks: []*domain.AvailabilityBlock{block("09:00", "17:00", domain.AvailabilityAutobook)},
			want:   []string{"09:00-17:00"},
		},
		{
			name: "merges overlapping and adjacent",
			blocks: []*domain.AvailabilityBlock{
				block("13:00", "15:00", domain.AvailabilityAutobook),
				block("09:00", "11:00", domain.AvailabilityAutobook),
				block("10:00", "13:00", domain.AvailabilityAutobook),
				block("16:00", "18:00", domain.AvailabilityAutobook),
			},
			want: []string{"09:00-15:00", "16:00-18:00"},
		},
		{
			name: "cuts unavailable",
			blocks: []*domain.AvailabilityBlock{
				block("09:00", "18:00", domain.AvailabilityAutobook),
				block("12:00", "13:00", domain.AvailabilityUnavailable),
				block("17:30", "19:00", domain.AvailabilityUnavailable),
			},
			want: []string{"09:00-12:00", "13:00-17:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildWindows(tt.blocks, day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spans(got))
			for _, w := range got {
				assert.Equal(t, day.Location(), w.Start.Location())
			}
		})
	}
}
