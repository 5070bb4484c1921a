package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "2016", want: Period{Year: 2016}},
		{in: " 2016 ", want: Period{Year: 2016}},
		{in: "2016-03", want: Period{Year: 2016, Month: 3}},
		{in: "2016-12", want: Period{Year: 2016, Month: 12}},
		{in: "", wantErr: true},
		{in: "16", wantErr: true},
		{in: "20xx", wantErr: true},
		{in: "2016-00", wantErr: true},
		{in: "2016-13", wantErr: true},
		{in: "2016-3x", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2016", Period{Year: 2016}.String())
	assert.Equal(t, "2016-03", Period{Year: 2016, Month: 3}.String())
}

func TestPeriodLess(t *testing.T) {
	assert.True(t, Period{Year: 2015}.Less(Period{Year: 2016}))
	assert.True(t, Period{Year: 2016}.Less(Period{Year: 2016, Month: 1}))
	assert.True(t, Period{Year: 2016, Month: 1}.Less(Period{Year: 2016, Month: 2}))
	assert.False(t, Period{Year: 2017}.Less(Period{Year: 2016, Month: 12}))
}

func TestWindowContains(t *testing.T) {
	w := Window{From: 2015, To: 2022}
	assert.True(t, w.Contains(Period{Year: 2015}))
	assert.True(t, w.Contains(Period{Year: 2022, Month: 6}))
	assert.False(t, w.Contains(Period{Year: 2014}))
	assert.False(t, w.Contains(Period{Year: 2023}))
}
