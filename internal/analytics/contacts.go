package analytics

import "regexp"

var contactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`from\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`to\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`([A-Z][a-z]+)\s+\(`),
}

// ExtractContact returns the first capitalised name found in a description such as
// "Payment from Alice" or "Sent to Bob". The bool is false when no name is found.
func ExtractContact(description string) (string, bool) {
	for _, pattern := range contactPatterns {
		if match := pattern.FindStringSubmatch(description); match != nil {
			return match[1], true
		}
	}
	return "", false
}
