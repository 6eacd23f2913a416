package listing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/listing-insights/internal/domain/geo"
	apperrors "github.com/yanqian/listing-insights/pkg/errors"
)

func TestFormSetClearsFieldErrors(t *testing.T) {
	form := NewForm(validValues())
	form.Settle(Outcome{Errors: FieldErrors{FieldBeds: {"Beds cannot be negative"}, FieldBedrooms: {"x"}}})
	require.Equal(t, []string{"Beds cannot be negative"}, form.Errors(FieldBeds))

	form.Set(FieldBeds, "2")
	require.Empty(t, form.Errors(FieldBeds))
	require.NotEmpty(t, form.Errors(FieldBedrooms))
	require.Equal(t, "2", form.Value(FieldBeds))

	form.ClearErrors()
	require.Empty(t, form.FieldErrors())
}

func TestFormValuesAreCopies(t *testing.T) {
	defaults := validValues()
	form := NewForm(defaults)
	defaults[FieldBeds] = "99"
	require.Equal(t, "1", form.Value(FieldBeds))

	values := form.Values()
	values[FieldBeds] = "42"
	require.Equal(t, "1", form.Value(FieldBeds))
}

func TestFormSetLocationWritesNeighbourhood(t *testing.T) {
	form := NewForm(validValues())
	entry := geo.RioNeighbourhoods[3]

	got, ok := form.SetLocation(geo.RioNeighbourhoods, geo.Point{Lat: entry.Lat, Lon: entry.Lon})
	require.True(t, ok)
	require.Equal(t, entry.Name, got.Name)
	require.Equal(t, entry.Name, form.Value(FieldNeighbourhood))
	require.Equal(t, formatNumber(entry.Lat), form.Value(FieldLatitude))
}

func TestFormSetLocationRoundsCoordinates(t *testing.T) {
	form := NewForm(validValues())
	form.SetLocation(geo.RioNeighbourhoods, geo.Point{Lat: -22.97111149, Lon: -43.18221151})
	require.Equal(t, "-22.971111", form.Value(FieldLatitude))
	require.Equal(t, "-43.182212", form.Value(FieldLongitude))
}

func TestFormSetLocationEmptyTableKeepsNeighbourhood(t *testing.T) {
	form := NewForm(validValues())
	_, ok := form.SetLocation(nil, geo.Point{Lat: 1, Lon: 2})
	require.False(t, ok)
	require.Equal(t, "Copacabana", form.Value(FieldNeighbourhood))
	require.Equal(t, "1", form.Value(FieldLatitude))
}

func TestFormPhaseTransitions(t *testing.T) {
	form := NewForm(validValues())
	require.Equal(t, PhaseIdle, form.Phase())

	require.NoError(t, form.Begin())
	require.True(t, form.Submitting())

	err := form.Begin()
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeBusy))

	form.Settle(Outcome{Success: true, Message: msgSuccess})
	require.Equal(t, PhaseIdle, form.Phase())
	require.NotNil(t, form.Outcome())
	require.True(t, form.Outcome().Success)

	require.NoError(t, form.Begin())
	require.Nil(t, form.Outcome())
}
