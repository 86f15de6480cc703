package compare

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/serialcheck/internal/results"
)

// RuntimeSkew reports when the two sides were produced by runtimes whose
// major or minor versions differ, which makes hash differences expected
// rather than platform-dependent. Unparseable versions are ignored.
func RuntimeSkew(left, right Side) (string, bool) {
	lv, lraw := newestRuntime(left.Results)
	rv, rraw := newestRuntime(right.Results)
	if lv == nil || rv == nil {
		return "", false
	}
	if lv.Major() == rv.Major() && lv.Minor() == rv.Minor() {
		return "", false
	}
	return fmt.Sprintf("runtime versions differ: %s (%s) vs %s (%s)", lraw, left.Name, rraw, right.Name), true
}

// newestRuntime returns the highest runtime version recorded in set.
func newestRuntime(set results.Set) (*semver.Version, string) {
	var (
		best    *semver.Version
		bestRaw string
	)
	for _, name := range set.Names() {
		raw := set[name].RuntimeVersion
		v, err := parseRuntimeVersion(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, firstField(raw)
		}
	}
	return best, bestRaw
}

// parseRuntimeVersion takes the leading token of a runtime version string
// ("go1.25.7 (gc linux/amd64)", "3.12.3 (main, ...)") and parses it as
// semver, tolerating "go" and "v" prefixes.
func parseRuntimeVersion(raw string) (*semver.Version, error) {
	token := firstField(raw)
	token = strings.TrimPrefix(token, "go")
	token = strings.TrimPrefix(token, "v")
	// Go prereleases are written go1.26rc1.
	if i := strings.IndexFunc(token, func(r rune) bool { return r >= 'a' && r <= 'z' }); i > 0 {
		token = token[:i] + "-" + token[i:]
	}
	return semver.NewVersion(token)
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
