package gopher

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// menuTerminator marks the end of a directory listing on the wire.
const menuTerminator = "."

// ParseMenu parses a raw directory response into an ordered sequence of
// items, preserving server order. It never fails: a line lacking the
// minimum tab-separated fields, or carrying a non-numeric port, is dropped
// and recorded as a warning while the remaining lines still parse. A line
// consisting solely of "." ends the listing early. An empty response yields
// an empty listing.
func ParseMenu(data []byte) ([]Item, []string) {
	items := []Item{}
	var warnings []string

	for i, line := range strings.Split(DecodeText(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if line == menuTerminator {
			break
		}

		item, err := parseMenuLine(line)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		items = append(items, item)
	}
	return items, warnings
}

// parseMenuLine parses one tab-separated menu line:
//
//	<typechar><display>\t<selector>\t<host>\t<port>[\t<extra>]
//
// Trailing fields beyond the port (Gopher+ markers) are ignored.
func parseMenuLine(line string) (Item, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 4 {
		return Item{}, fmt.Errorf("expected 4 tab-separated fields, got %d", len(parts))
	}
	if parts[0] == "" {
		return Item{}, fmt.Errorf("missing item type")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return Item{}, fmt.Errorf("non-numeric port %q", parts[3])
	}

	return Item{
		Type:     TypeFromChar(parts[0][0]),
		Display:  parts[0][1:],
		Selector: parts[1],
		Host:     parts[2],
		Port:     port,
	}, nil
}

// DecodeText decodes response bytes as text: UTF-8 when valid, otherwise a
// best-effort Latin-1 fallback, which cannot fail.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
