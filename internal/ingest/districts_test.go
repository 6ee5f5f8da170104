package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistricts(t *testing.T) {
	raw := "Gemeinde_schluessel,Gemeinde_name,geometry\n" +
		`001,Mitte,"POLYGON((13.35 52.50,13.42 52.50,13.42 52.54,13.35 52.54,13.35 52.50))"` + "\n" +
		`003,Pankow,"MULTIPOLYGON(((13.40 52.55,13.50 52.55,13.50 52.65,13.40 52.65,13.40 52.55)))"` + "\n"

	records, err := ParseDistricts(strings.NewReader(raw))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Mitte", records[0].Name)
	assert.True(t, strings.HasPrefix(records[1].WKT, "MULTIPOLYGON"))
}

func TestParseDistricts_Errors(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		_, err := ParseDistricts(strings.NewReader("name,wkt\nMitte,POINT(1 2)\n"))
		assert.Error(t, err)
	})

	t.Run("bad geometry", func(t *testing.T) {
		_, err := ParseDistricts(strings.NewReader("Gemeinde_name,geometry\nMitte,POINT(1 2)\n"))
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseDistricts(strings.NewReader("Gemeinde_name,geometry\n,\"POLYGON((0 0,1 0,1 1,0 0))\"\n"))
		assert.Error(t, err)
	})
}
