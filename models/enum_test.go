package models

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	tests := map[string]time.Duration{
		"1m":  time.Minute,
		"5m":  5 * time.Minute,
		"15M": 15 * time.Minute,
		" 1h": time.Hour,
		"1d":  24 * time.Hour,
	}
	for in, want := range tests {
		got, err := ParseInterval(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseInterval("2w")
	require.Error(t, err)
	_, hasStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, hasStack, "interval errors carry a stack trace")
	assert.False(t, IsValidInterval(""))
}

func formDefault(t *testing.T, v any, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(v).FieldByName(field)
	require.True(t, ok, field)
	for _, part := range strings.Split(f.Tag.Get("form"), ",") {
		if d, found := strings.CutPrefix(part, "default="); found {
			return d
		}
	}
	t.Fatalf("%s has no form default", field)
	return ""
}

func TestQueryDefaultsMatchConstants(t *testing.T) {
	assert.Equal(t, DefaultInterval, formDefault(t, KlineQuery{}, "Interval"))
	assert.Equal(t, strconv.Itoa(DefaultKlineLimit), formDefault(t, KlineQuery{}, "Limit"))
	assert.Equal(t, string(DefaultSymbolScope), formDefault(t, SymbolsQuery{}, "Scope"))

	f, _ := reflect.TypeOf(KlineQuery{}).FieldByName("Limit")
	assert.Contains(t, f.Tag.Get("validate"), "max="+strconv.Itoa(MaxKlineLimit))
	assert.True(t, IsValidInterval(DefaultInterval))
}
