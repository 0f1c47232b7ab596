package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

func TestConvertValue(t *testing.T) {
	cases := []struct {
		v        float64
		from, to string
		want     float64
	}{
		{1000, "mm", "m", 1},
		{1, "in", "mm", 25.4},
		{100, "mm^2", "cm^2", 1},
		{1, "ft^3", "in^3", 1728},
		{1, "cm^4", "mm^4", 10000},
		{3, "M", "m", 3},
	}
	for _, c := range cases {
		got, err := ConvertValue(c.v, c.from, c.to)
		require.NoError(t, err, "%s -> %s", c.from, c.to)
		assert.InDelta(t, c.want, got, 1e-9, "%s -> %s", c.from, c.to)
	}
}

func TestConversionFactor_Errors(t *testing.T) {
	_, err := ConversionFactor("mm", "mm^2")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Contains(t, err.Error(), "cannot convert mm (length) to mm^2 (area)")

	_, err = ConversionFactor("furlong", "m")
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	f, err := ConversionFactor("sec", "sec")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestUnitFamilyOf(t *testing.T) {
	fam, ok := UnitFamilyOf("in^4")
	require.True(t, ok)
	assert.Equal(t, FamilyInertia, fam)

	_, ok = UnitFamilyOf("kg")
	assert.False(t, ok)

	// Every declared unit has a conversion entry.
	for _, u := range Units.Values() {
		_, ok := unitTable[u]
		assert.True(t, ok, u)
	}
}

func TestConvertAll_ShapeParameters(t *testing.T) {
	c, err := NewCrossSection(map[string]any{"ID": "cs", "Shape": "Rectangular", "Parameters": []any{500, 300}})
	require.NoError(t, err)

	m, err := ConvertAll(c.ShapeParameters(), "mm", "m")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, m["H"], 1e-12)
	assert.InDelta(t, 0.3, m["B"], 1e-12)
}

func TestDisplayUnit(t *testing.T) {
	assert.Equal(t, "mm", DisplayUnit(0.001, "m", true))
	assert.Equal(t, "cm", DisplayUnit(2540, "mm", true))
	assert.Equal(t, "m", DisplayUnit(25400, "mm", true))
	assert.Equal(t, "in", DisplayUnit(3000, "mm", false))
	assert.Equal(t, "ft", DisplayUnit(30, "m", false))
	assert.Equal(t, "mm^2", DisplayUnit(0.001, "mm^2", true))
	assert.Equal(t, "m", DisplayUnit(0, "m", true))
}
