// Package email finds email addresses in the rendered text of HTML documents.
package email

import "regexp"

// Building blocks of PatternSource. The local part is either a dot-separated run of atoms or a
// quoted string; the domain is a hostname with a 2+ letter final label, a dotted-quad IPv4
// literal with optional port, or a bracketed IPv6 literal.
const (
	localAtoms  = "[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*"
	localQuoted = `"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*"`
	hostname    = `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}`
	ipv4Port    = `(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?`
	ipv6Literal = `\[(?:[0-9a-fA-F]{1,4}:){7,7}[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,7}:` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,5}:(?:[0-9a-fA-F]{1,4}:){1,4}[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,4}:(?:[0-9a-fA-F]{1,4}:){1,5}[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,3}:(?:[0-9a-fA-F]{1,4}:){1,6}[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,2}:(?:[0-9a-fA-F]{1,4}:){1,7}[0-9a-fA-F]{1,4}` +
		`|\[(?:[0-9a-fA-F]{1,4}:){1,1}:(?:[0-9a-fA-F]{1,4}:){1,8}[0-9a-fA-F]{1,4}` +
		`|\[:(?::[0-9a-fA-F]{1,4}){1,9}` +
		`|(?:[a-zA-Z0-9-]*[a-zA-Z0-9]:)?(?:\d{1,3}\.){3}\d{1,3}\]`
)

// PatternSource is the RFC 5322 inspired expression used to spot addresses in free text.
// It is a heuristic: the IPv6 alternatives stop before the closing bracket.
const PatternSource = "(?:" + localAtoms + "|" + localQuoted + ")@(?:" +
	hostname + "|" + ipv4Port + "|" + ipv6Literal + ")"

// Pattern is the compiled form of PatternSource.
var Pattern = regexp.MustCompile(PatternSource)

// FindAll returns every non-overlapping address in text, left to right.
func FindAll(text string) []string {
	return Pattern.FindAllString(text, -1)
}
