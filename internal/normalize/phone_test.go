package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		fromURL     string
		fromContext string
		wantRaw     string
		wantE164    string
	}{
		{
			name:     "explicit plus kept",
			raw:      "+33 1 42 96 10 95",
			wantRaw:  "+33 1 42 96 10 95",
			wantE164: "+33142961095",
		},
		{
			name:     "double zero prefix",
			raw:      "0033 1 42 96 10 95",
			wantRaw:  "+33 1 42 96 10 95",
			wantE164: "+33142961095",
		},
		{
			name:     "bare digits with calling code",
			raw:      "33142961095",
			wantRaw:  "+33142961095",
			wantE164: "+33142961095",
		},
		{
			name:     "national with url country",
			raw:      "01 42 96 10 95",
			fromURL:  "FR",
			wantRaw:  "01 42 96 10 95",
			wantE164: "+33142961095",
		},
		{
			name:        "context beats url country",
			raw:         "020 7946 0018",
			fromURL:     "FR",
			fromContext: "GB",
			wantRaw:     "020 7946 0018",
			wantE164:    "+442079460018",
		},
		{
			name:    "no country no prefix stays raw",
			raw:     "01 42 96 10 95",
			wantRaw: "01 42 96 10 95",
		},
		{
			// "55" looks like Brazil's calling code but the number does not
			// validate; the raw form must come back unmangled.
			name:    "false calling code keeps raw",
			raw:     "555 123 4567",
			wantRaw: "555 123 4567",
		},
		{
			name:    "invalid number keeps raw only",
			raw:     "+99 9 99",
			wantRaw: "+99 9 99",
		},
		{
			name: "empty",
			raw:  "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, e164 := Phone(tt.raw, tt.fromURL, tt.fromContext)
			assert.Equal(t, tt.wantRaw, raw)
			assert.Equal(t, tt.wantE164, e164)
		})
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "33142961095", Digits("+33 1-42.96.10.95"))
	assert.Equal(t, "", Digits("no digits"))
}

func TestCallingCodeCountry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "FR", CallingCodeCountry("33142961095"))
	assert.Equal(t, "GB", CallingCodeCountry("442079460018"))
	assert.Equal(t, "MA", CallingCodeCountry("212522123456"))
	assert.Equal(t, "US", CallingCodeCountry("12125551234"))
	assert.Equal(t, "", CallingCodeCountry(""))
}
