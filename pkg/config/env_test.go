package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("MASCOT_TEST_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("MASCOT_TEST_STRING", "fallback"))

	t.Setenv("MASCOT_TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("MASCOT_TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 42},
		{name: "valid", value: "17890", want: 17890},
		{name: "negative", value: "-1", want: -1},
		{name: "invalid", value: "many", want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MASCOT_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("MASCOT_TEST_INT", 42))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "unset", value: "", want: 30 * time.Second},
		{name: "valid", value: "1m30s", want: 90 * time.Second},
		{name: "bare number", value: "30", want: 30 * time.Second},
		{name: "invalid", value: "soon", want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MASCOT_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("MASCOT_TEST_DURATION", 30*time.Second))
		})
	}
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"tauri://localhost"}

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "unset", value: "", want: def},
		{name: "single", value: "http://localhost:1420", want: []string{"http://localhost:1420"}},
		{name: "trimmed", value: " a , b ,c ", want: []string{"a", "b", "c"}},
		{name: "only separators", value: " , ,", want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MASCOT_TEST_LIST", tt.value)
			assert.Equal(t, tt.want, GetEnvStringList("MASCOT_TEST_LIST", def))
		})
	}
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))

	assert.NoError(t, ValidateDurationRange(5*time.Second, time.Second, time.Minute))
	assert.ErrorContains(t, ValidateDurationRange(time.Millisecond, time.Second, time.Minute), "below minimum")
	assert.ErrorContains(t, ValidateDurationRange(time.Hour, time.Second, time.Minute), "exceeds maximum")
	assert.ErrorContains(t, ValidateDurationRange(time.Second, time.Minute, time.Second), "invalid range")
}
