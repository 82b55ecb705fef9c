package adapter

import (
	"regexp"
	"strings"
)

// A-share codes qualified by exchange: Shanghai, Shenzhen, Beijing.
var symbolPattern = regexp.MustCompile(`^\d{6}\.(SH|SZ|BJ)$`)

var (
	defaultWatchlist = []string{"600519.SH", "000001.SZ", "300750.SZ", "601318.SH"}

	// keyed by lower-case sector name
	sectorSymbols = map[string][]string{
		"liquor": {"600519.SH", "000858.SZ"},
		"bank":   {"600036.SH", "601398.SH", "000001.SZ"},
	}
)

// NormalizeSymbol trims and upper-cases an instrument code.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// IsTradable reports whether symbol is a well-formed exchange-qualified code.
func IsTradable(symbol string) bool {
	return symbolPattern.MatchString(NormalizeSymbol(symbol))
}

func lookupSector(sector string) ([]string, bool) {
	syms, ok := sectorSymbols[strings.ToLower(strings.TrimSpace(sector))]
	return syms, ok
}
