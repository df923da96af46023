package compose

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/mobiledir/models"
)

func TestQueryOnlyPlace(t *testing.T) {
	qs := Query(models.SearchFilter{Place: "Gandhipuram", District: "", State: ""})
	assert.Equal(t, "place=Gandhipuram", qs)
}

func TestQueryTrimsAndDropsBlankFields(t *testing.T) {
	qs := Query(models.SearchFilter{Place: "  ", District: " Coimbatore ", State: "Tamil Nadu"})

	values, err := url.ParseQuery(qs)
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"district": {"Coimbatore"},
		"state":    {"Tamil Nadu"},
	}, values)
}

func TestQueryEncodesValues(t *testing.T) {
	qs := Query(models.SearchFilter{Place: "R.S. Puram & Co"})
	assert.Equal(t, "place=R.S.+Puram+%26+Co", qs)
}

func TestQueryIsIdempotent(t *testing.T) {
	f := models.SearchFilter{Place: "Kochi", District: "Ernakulam", State: "Kerala"}
	assert.Equal(t, Query(f), Query(f))
}

func TestShowAllIsEmpty(t *testing.T) {
	assert.Equal(t, "", ShowAll())
	assert.Equal(t, ShowAll(), Query(models.SearchFilter{Place: " ", District: "\t", State: ""}))
}
