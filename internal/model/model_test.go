package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"08:00", NewClock(8, 0), false},
		{"17:30", NewClock(17, 30), false},
		{"00:00", 0, false},
		{"9:00", 0, true},
		{"25:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockFormatting(t *testing.T) {
	assert.Equal(t, "08:30", NewClock(8, 30).String())
	assert.Equal(t, "08:30 AM", NewClock(8, 30).Label())
	assert.Equal(t, "12:00 PM", NewClock(12, 0).Label())
	assert.Equal(t, "05:30 PM", NewClock(17, 30).Label())
	assert.Equal(t, NewClock(9, 0), NewClock(8, 30).Add(30*time.Minute))
}

func TestClockText(t *testing.T) {
	var c Clock
	require.NoError(t, c.UnmarshalText([]byte("14:30")))
	assert.Equal(t, NewClock(14, 30), c)

	b, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "14:30", string(b))

	assert.Error(t, c.UnmarshalText([]byte("later")))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-06-10",
		"2024-06-10T00:00:00Z",
		"2024-06-10T00:00:00.000+05:00",
		"2024-06-10T23:15:00-07:00",
	} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDate("10/06/2024")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, SameDay(a, a.AddDate(0, 0, 1)))
}

func TestAppointmentIntervals(t *testing.T) {
	a := Appointment{Start: NewClock(9, 0), End: NewClock(10, 0)}

	assert.True(t, a.Covers(NewClock(9, 0)))
	assert.True(t, a.Covers(NewClock(9, 30)))
	assert.False(t, a.Covers(NewClock(10, 0)))
	assert.False(t, a.Covers(NewClock(8, 30)))

	assert.True(t, a.Overlaps(NewClock(9, 30), NewClock(10, 30)))
	assert.True(t, a.Overlaps(NewClock(8, 0), NewClock(11, 0)))
	assert.False(t, a.Overlaps(NewClock(10, 0), NewClock(11, 0)))
	assert.False(t, a.Overlaps(NewClock(8, 0), NewClock(9, 0)))
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.True(t, c.HasDoctor("Dr. Asma"))
	assert.False(t, c.HasDoctor("Dr. Who"))
	assert.True(t, c.HasTreatment("Eye Checkup"))
	assert.False(t, c.HasTreatment(All))
}
