package clipboard

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	linkRegex  = regexp.MustCompile(`^(?i)(https?|ftp)://\S+$|^www\.\S+\.\S+$`)
	emailRegex = regexp.MustCompile(`^(?i)(mailto:)?[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ().\-]{5,}[0-9]$`)
	colorRegex = regexp.MustCompile(`^(?i)#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$|^(?i)(rgb|rgba|hsl|hsla)\([^)]*\)$`)
)

// minPhoneDigits is the fewest digits accepted as a phone number.
const minPhoneDigits = 7

// codeMarkers are tokens that, two or more at a time, suggest source code.
var codeMarkers = []string{
	"func ", "def ", "class ", "import ", "package ", "#include", "return ",
	"const ", "let ", "var ", "=>", "==", "!=", "&&", "||", "();", "{", "}", ";\n",
	"SELECT ", "FROM ", "</", "/>",
}

// Classify picks a category for captured text. Single-line checks run
// first (link, email, colour, phone); multi-line or token-dense content is
// treated as code; everything else is plain text.
// PRE: none
// POST: returns a valid Category; never CategoryImage
func Classify(content string) Category {
	s := strings.TrimSpace(content)
	if s == "" {
		return CategoryText
	}

	if !strings.ContainsAny(s, "\n\t ") || phoneRegex.MatchString(s) {
		switch {
		case linkRegex.MatchString(s):
			return CategoryLink
		case emailRegex.MatchString(s):
			return CategoryEmail
		case colorRegex.MatchString(s):
			return CategoryColor
		case isPhone(s):
			return CategoryPhone
		}
	}
	if colorRegex.MatchString(s) {
		return CategoryColor
	}

	if looksLikeCode(s) {
		return CategoryCode
	}
	return CategoryText
}

func isPhone(s string) bool {
	if !phoneRegex.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func looksLikeCode(s string) bool {
	hits := 0
	for _, m := range codeMarkers {
		if strings.Contains(s, m) {
			hits++
		}
		if hits >= 2 {
			return true
		}
	}
	return false
}
