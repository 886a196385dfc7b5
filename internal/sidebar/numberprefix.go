package sidebar

import (
	"regexp"
	"strconv"
)

// numberPrefixRegex matches a leading digit run, a separator run of "-", "_"
// or "." with optional surrounding whitespace, and the remaining name. The
// separator is required: a name of bare digits ("2024") is a name, not a
// prefix.
var numberPrefixRegex = regexp.MustCompile(`^(\d+)\s*[-_.]+\s*(.+)$`)

// ExtractNumberPrefix parses an implicit ordering hint off a file or
// directory name. For "03-setup" it returns ("setup", 3); for a name without
// a recognizable prefix it returns the name unchanged and a nil hint.
// Leading zeros are accepted but ignored for the numeric value, so
// "007-intro" and "7-intro" carry the same hint.
func ExtractNumberPrefix(name string) (string, *float64) {
	matches := numberPrefixRegex.FindStringSubmatch(name)
	if len(matches) != 3 {
		return name, nil
	}

	prefix, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		// Digit run too large to represent as a number; treat the whole
		// name as unprefixed rather than guessing an order.
		return name, nil
	}

	return matches[2], &prefix
}
