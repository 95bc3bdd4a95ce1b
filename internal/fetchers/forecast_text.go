package fetchers

import "strings"

const productMarker = ":Product:"

// ExtractForecastBody strips the SWPC product header from a forecast text.
// Everything before the first line starting with ":Product:" is dropped, and
// so is every later line starting with ':' or '#'. Text without the marker
// yields "".
func ExtractForecastBody(raw string) string {
	var out []string
	started := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, productMarker) {
			started = true
		}
		if !started {
			continue
		}
		if strings.HasPrefix(line, ":") || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
