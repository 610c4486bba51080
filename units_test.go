package confit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagogjt/confit/ir"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"512", 512},
		{"512b", 512},
		{"10K", 10240},
		{"10k", 10240},
		{"10KB", 10240},
		{"10KiB", 10240},
		{"10 kilobytes", 10240},
		{"1M", 1 << 20},
		{"1G", 1 << 30},
		{"1T", 1 << 40},
		{"1P", 1 << 50},
		{"2.5K", 2560},
		{"0.5M", 512 << 10},
		{"  64  bytes  ", 64},
	}
	for _, tc := range tests {
		got, err := ParseBytes(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseBytesBad(t *testing.T) {
	for _, in := range []string{"", "K", "10Q", "ten K", "10 K B", "9999999999P"} {
		_, err := ParseBytes(in)
		assert.ErrorIs(t, err, ir.ErrBadValue, in)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"0", 0},
		{"7000", 7 * time.Second},
		{"10ns", 10 * time.Nanosecond},
		{"10us", 10 * time.Microsecond},
		{"10µs", 10 * time.Microsecond},
		{"250ms", 250 * time.Millisecond},
		{"5s", 5 * time.Second},
		{"3m", 3 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2 hours", 2 * time.Hour},
		{"1 day", 24 * time.Hour},
		{"30 seconds", 30 * time.Second},
		{"1.5m", 90 * time.Second},
		{"0.5s", 500 * time.Millisecond},
		{"-5s", -5 * time.Second},
	}
	for _, tc := range tests {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseDurationBad(t *testing.T) {
	for _, in := range []string{"", "fast", "10 lightyears", "ms"} {
		_, err := ParseDuration(in)
		assert.ErrorIs(t, err, ir.ErrBadValue, in)
	}
}
