// ABOUTME: Tests for the entry composer
// ABOUTME: Covers the mobile number pattern and the free-text length gate
package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/mobiledir/models"
)

func TestEntryTrimsAllFields(t *testing.T) {
	req, err := Entry(" 9876543210 ", " Gandhipuram", "Coimbatore ", "  Tamil Nadu  ")
	require.NoError(t, err)

	entry, ok := req.Entry()
	require.True(t, ok)
	assert.Equal(t, models.Entry{
		Number:   "9876543210",
		Place:    "Gandhipuram",
		District: "Coimbatore",
		State:    "Tamil Nadu",
	}, entry)
}

func TestEntryRejectsShortNumber(t *testing.T) {
	_, err := Entry("12345", "Gandhipuram", "Coimbatore", "Tamil Nadu")
	require.ErrorIs(t, err, ErrInvalidEntry)
	assert.Equal(t, "Please fill all fields correctly.", err.Error())
}

func TestEntryRequiresEveryField(t *testing.T) {
	cases := []struct {
		name                           string
		number, place, district, state string
	}{
		{"blank place", "9876543210", "  ", "Coimbatore", "Tamil Nadu"},
		{"blank district", "9876543210", "Gandhipuram", "", "Tamil Nadu"},
		{"blank state", "9876543210", "Gandhipuram", "Coimbatore", "\t"},
		{"all blank", "", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Entry(tc.number, tc.place, tc.district, tc.state)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestValidNumberLeadingDigit(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		n := string(d) + "876543210"
		want := d >= '6'
		assert.Equal(t, want, ValidNumber(n), "number %s", n)
	}
}

func TestValidNumberShape(t *testing.T) {
	cases := map[string]bool{
		"9876543210":    true,
		" 9876543210\n": true,
		"6000000000":    true,
		"987654321":     false,
		"98765432101":   false,
		"98765 43210":   false,
		"+919876543210": false,
		"98765432a0":    false,
		"９８７６５４３２１０":    false,
		"":              false,
	}
	for n, want := range cases {
		assert.Equal(t, want, ValidNumber(n), "number %q", n)
	}
}

func TestFreeTextLengthGate(t *testing.T) {
	cases := []struct {
		text string
		ok   bool
	}{
		{"9876543210 Gandhipuram", true},
		{"aaaaaaaaaaaa", true},
		{"aaaaaaaaaaa", true},
		{"aaaaaaaaaa", false},
		{"98765", false},
		{"   9876543210   ", false},
		{"", false},
		{strings.Repeat(" ", 20), false},
	}

	for _, tc := range cases {
		_, err := FreeText(tc.text)
		if tc.ok {
			assert.NoError(t, err, "text %q", tc.text)
		} else {
			assert.ErrorIs(t, err, ErrInvalidEntry, "text %q", tc.text)
		}
	}
}

func TestFreeTextKeepsTextVerbatim(t *testing.T) {
	req, err := FreeText("  9876543210 Gandhipuram  ")
	require.NoError(t, err)

	text, ok := req.Text()
	require.True(t, ok)
	assert.Equal(t, "  9876543210 Gandhipuram  ", text)
}

func TestFreeTextCountsUTF16Units(t *testing.T) {
	cases := []struct {
		name string
		text string
		ok   bool
	}{
		{"tamil word", "கோயம்புத்தூர்", true},
		{"ten tamil letters", strings.Repeat("க", 10), false},
		{"six emoji are twelve units", strings.Repeat("😀", 6), true},
		{"five emoji are ten units", strings.Repeat("😀", 5), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FreeText(tc.text)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEntry)
			}
		})
	}
}

func TestFreeTextTrimsLikeTheWebClient(t *testing.T) {
	// Byte order marks are trimmed; NEL is kept and counts.
	_, err := FreeText("\ufeff" + strings.Repeat("a", 10) + "\ufeff")
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = FreeText("\u0085" + strings.Repeat("a", 10))
	assert.NoError(t, err)

	_, err = FreeText("\u00a0\u3000" + strings.Repeat("a", 10) + "\u2028")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
