package parser

import (
	"regexp"
	"strings"

	"prudens/internal/errs"
	"prudens/internal/priority"
)

var priorityPairRe = regexp.MustCompile(`^[a-zA-Z]\w*\s*>\s*[a-zA-Z]\w*$`)

// ParsePriorities parses the text following "@Priorities": either the
// literal "default" (later-declared rules defeat earlier ones they
// conflict with) or ";"-separated "High > Low" pairs naming rules already
// declared in order.
func ParsePriorities(source string, order []string) (useDefault bool, pairs []priority.Pair, err error) {
	source = strings.TrimSpace(source)
	if source == "" || source == "default" {
		return true, nil, nil
	}

	known := make(map[string]bool, len(order))
	for _, name := range order {
		known[name] = true
	}

	for _, raw := range strings.Split(source, ";") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if !priorityPairRe.MatchString(entry) {
			return false, nil, errs.NewSyntaxError("priority", 0, "malformed priority entry %q", entry)
		}
		sides := strings.SplitN(entry, ">", 2)
		hi := strings.TrimSpace(sides[0])
		lo := strings.TrimSpace(sides[1])
		if !known[hi] {
			return false, nil, errs.NewSyntaxError("priority", 0, "priority references unknown rule %q", hi)
		}
		if !known[lo] {
			return false, nil, errs.NewSyntaxError("priority", 0, "priority references unknown rule %q", lo)
		}
		pairs = append(pairs, priority.Pair{Higher: hi, Lower: lo})
	}
	return false, pairs, nil
}
