package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodValidate(t *testing.T) {
	require.NoError(t, Period{Month: 1, Year: 2025}.Validate())
	require.NoError(t, Period{Month: 12, Year: 1}.Validate())

	for _, p := range []Period{
		{Month: 0, Year: 2025},
		{Month: 13, Year: 2025},
		{Month: 3, Year: 0},
		{Month: 3, Year: -2025},
	} {
		err := p.Validate()
		require.ErrorIs(t, err, ErrInvalidPeriod, "period %+v", p)
	}
}

func TestPeriodBoundsHalfOpen(t *testing.T) {
	p := Period{Month: 12, Year: 2024}
	start, end := p.Bounds()
	require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)

	require.True(t, p.Contains(start))
	require.True(t, p.Contains(end.Add(-time.Second)))
	require.False(t, p.Contains(end))
	require.False(t, p.Contains(start.Add(-time.Second)))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("3", "2025")
	require.NoError(t, err)
	require.Equal(t, Period{Month: 3, Year: 2025}, p)
	require.Equal(t, "2025-03", p.String())

	_, err = ParsePeriod("march", "2025")
	require.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ParsePeriod("3", "twenty")
	require.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = ParsePeriod("13", "2025")
	require.ErrorIs(t, err, ErrInvalidPeriod)
}
