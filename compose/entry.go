// ABOUTME: Entry composer for the add operation
// ABOUTME: Validates structured four-field entries and gates free-text lines on length
package compose

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/harperreed/mobiledir/models"
)

// ErrInvalidEntry is returned for any add input rejected before a request is built.
var ErrInvalidEntry = errors.New(models.MsgInvalidEntry)

var mobileNumberPattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// MinFreeTextLen is the exclusive lower bound on trimmed free-text length.
const MinFreeTextLen = 10

// ValidNumber reports whether n, trimmed, is a 10-digit mobile number starting with 6-9.
func ValidNumber(n string) bool {
	return mobileNumberPattern.MatchString(strings.TrimSpace(n))
}

// Entry builds a structured add request. Every field is trimmed.
func Entry(number, place, district, state string) (models.AddRequest, error) {
	e := models.Entry{
		Number:   strings.TrimSpace(number),
		Place:    strings.TrimSpace(place),
		District: strings.TrimSpace(district),
		State:    strings.TrimSpace(state),
	}

	if !mobileNumberPattern.MatchString(e.Number) || e.Place == "" || e.District == "" || e.State == "" {
		return models.AddRequest{}, ErrInvalidEntry
	}

	return models.NewEntryRequest(e), nil
}

// FreeText builds a free-text add request. Only the trimmed length is checked;
// the backend owns splitting the line into number and place, so the text is
// sent untrimmed and may not contain a number at all.
func FreeText(text string) (models.AddRequest, error) {
	if textLength(text) <= MinFreeTextLen {
		return models.AddRequest{}, ErrInvalidEntry
	}
	return models.NewTextRequest(text), nil
}

// textLength measures text the way the web client does: surrounding
// whitespace removed, then counted in UTF-16 code units.
func textLength(text string) int {
	trimmed := strings.TrimFunc(text, isTrimSpace)
	return len(utf16.Encode([]rune(trimmed)))
}

func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
