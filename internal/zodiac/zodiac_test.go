package zodiac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := ParseBirthDate(s)
	require.NoError(t, err)
	return date
}

func TestResolveSign_Boundaries(t *testing.T) {
	cases := []struct {
		date string
		want Key
	}{
		{"2024-03-21", Aries},
		{"2024-04-19", Aries},
		{"2024-03-20", Pisces},
		{"2024-02-19", Pisces},
		{"2024-04-20", Taurus},
		{"2024-05-20", Taurus},
		{"2024-05-21", Gemini},
		{"2024-06-20", Gemini},
		{"2024-06-21", Cancer},
		{"2024-07-22", Cancer},
		{"2024-07-23", Leo},
		{"2024-08-22", Leo},
		{"2024-08-23", Virgo},
		{"2024-09-22", Virgo},
		{"2024-09-23", Libra},
		{"2024-10-22", Libra},
		{"2024-10-23", Scorpio},
		{"2024-11-21", Scorpio},
		{"2024-11-22", Sagittarius},
		{"2024-12-21", Sagittarius},
		{"2024-12-22", Capricorn},
		{"2025-01-19", Capricorn},
		{"2025-01-20", Aquarius},
		{"2025-02-18", Aquarius},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveSign(mustDate(t, tc.date)), "date %s", tc.date)
	}
}

// Every day of a leap and a non-leap year must map to exactly one known sign.
func TestResolveSign_FullYearPartition(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		counts := make(map[Key]int)
		for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
			key := ResolveSign(d)
			_, ok := SignInfo(key)
			require.True(t, ok, "unmapped date %s", d.Format(BirthDateLayout))
			counts[key]++
		}
		assert.Len(t, counts, 12, "year %d", year)

		total := 0
		for _, n := range counts {
			total += n
		}
		want := 365
		if year%4 == 0 {
			want = 366
		}
		assert.Equal(t, want, total, "year %d", year)
	}
}

func TestSignInfo(t *testing.T) {
	sign, ok := SignInfo(Aries)
	require.True(t, ok)
	assert.Equal(t, "白羊座", sign.Name)
	assert.Equal(t, "♈", sign.Symbol)
	assert.Equal(t, "火象星座", sign.Element)

	_, ok = SignInfo(Key("ophiuchus"))
	assert.False(t, ok)
}

func TestAllSigns(t *testing.T) {
	all := AllSigns()
	require.Len(t, all, 12)
	assert.Equal(t, Aries, all[0].Key)
	assert.Equal(t, Pisces, all[11].Key)
}

func TestIsPlausibleBirthDate(t *testing.T) {
	assert.True(t, IsPlausibleBirthDate("1990-06-15"))
	assert.True(t, IsPlausibleBirthDate("2000-02-29"))

	assert.False(t, IsPlausibleBirthDate("2099-01-01"), "future date")
	assert.False(t, IsPlausibleBirthDate("15-01-2024"), "wrong shape")
	assert.False(t, IsPlausibleBirthDate("1990-6-15"), "missing zero padding")
	assert.False(t, IsPlausibleBirthDate("2023-02-30"), "not a real date")
	assert.False(t, IsPlausibleBirthDate("1990/06/15"))
	assert.False(t, IsPlausibleBirthDate(""))
}
