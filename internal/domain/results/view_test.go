package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/listing-insights/internal/domain/listing"
)

func TestBuildPaletteFallsBackToMedium(t *testing.T) {
	require.Equal(t, PaletteGreen, PaletteFor(listing.ClassLow))
	require.Equal(t, PaletteBlue, PaletteFor(listing.ClassMedium))
	require.Equal(t, PaletteOrange, PaletteFor(listing.ClassLuxury))
	require.Equal(t, PaletteBlue, PaletteFor("premium"))

	view := Build(listing.PredictionResponse{PredictedClass: "premium"})
	require.Equal(t, PaletteBlue, view.Palette)
	require.False(t, view.HasFactors)
}

func TestBuildSortsProbabilitiesDescending(t *testing.T) {
	view := Build(listing.PredictionResponse{
		PredictedClass: listing.ClassMedium,
		Confidence:     "50.0%",
		Probabilities: listing.Probabilities{
			listing.ClassLow:    0.2,
			listing.ClassMedium: 0.5,
			listing.ClassLuxury: 0.3,
		},
	})

	require.Equal(t, "50.0%", view.Confidence)
	require.Len(t, view.Bars, 3)
	require.Equal(t, listing.ClassMedium, view.Bars[0].Class)
	require.Equal(t, "50.0%", view.Bars[0].Text)
	require.Equal(t, listing.ClassLuxury, view.Bars[1].Class)
	require.Equal(t, "30.0%", view.Bars[1].Text)
	require.Equal(t, listing.ClassLow, view.Bars[2].Class)
	require.InDelta(t, 20.0, view.Bars[2].Percent, 1e-9)
}

func TestBuildProbabilityTiesKeepClassOrder(t *testing.T) {
	view := Build(listing.PredictionResponse{
		PredictedClass: listing.ClassLow,
		Probabilities: listing.Probabilities{
			listing.ClassLuxury: 0.25,
			listing.ClassLow:    0.25,
			listing.ClassMedium: 0.5,
		},
	})
	require.Equal(t, listing.ClassMedium, view.Bars[0].Class)
	require.Equal(t, listing.ClassLow, view.Bars[1].Class)
	require.Equal(t, listing.ClassLuxury, view.Bars[2].Class)
}

func TestBuildGroupsExplanationItems(t *testing.T) {
	ref := listing.NewFactorValue("Centro")
	zeroRef := listing.NewFactorValue(0)
	view := Build(listing.PredictionResponse{
		PredictedClass: listing.ClassLuxury,
		Explanation: &listing.Explanation{
			CoveragePct: 87.5,
			Items: []listing.ExplanationItem{
				{Label: "Bairro", Group: "Localizacao", Value: listing.NewFactorValue("Leblon"), Impact: -0.2, Direction: "contraria", Reference: &ref},
				{Label: "Hóspedes", Group: "Tamanho", Value: listing.NewFactorValue(4), Impact: 0.4, Direction: "favorece"},
				{Label: "Latitude", Group: "Localizacao", Value: listing.NewFactorValue(-22.98765), Impact: 0.1, Direction: "favorece", Reference: &zeroRef},
				{Label: "Verificado", Group: "Host", Value: listing.NewFactorValue(false), Impact: 0, Direction: "neutro"},
				{Label: "Outro", Group: "Extras", Value: listing.NewFactorValue(true), Impact: 0.05, Direction: "favorece"},
			},
		},
	})

	require.True(t, view.HasFactors)
	require.Equal(t, "87.5", view.CoveragePct)
	require.Len(t, view.Groups, 4)

	names := make([]string, 0, len(view.Groups))
	for _, g := range view.Groups {
		names = append(names, g.Name)
	}
	require.Equal(t, []string{"Localizacao", "Tamanho", "Host", "Extras"}, names)
	require.Equal(t, IconLocation, view.Groups[0].Icon)
	require.Equal(t, IconSize, view.Groups[1].Icon)
	require.Equal(t, IconHost, view.Groups[2].Icon)
	require.Equal(t, IconOther, view.Groups[3].Icon)

	location := view.Groups[0].Items
	require.Len(t, location, 2)
	require.Equal(t, "Leblon", location[0].Value)
	require.Equal(t, "Centro", location[0].Reference)
	require.False(t, location[0].Positive)
	require.InDelta(t, 50.0, location[0].Width, 1e-9)
	require.Equal(t, "Impacto: -0.2000 (contraria)", location[0].Tooltip)
	require.Equal(t, "-22.99", location[1].Value)
	require.Empty(t, location[1].Reference)
	require.True(t, location[1].Positive)

	size := view.Groups[1].Items[0]
	require.Equal(t, "4.00", size.Value)
	require.InDelta(t, 100.0, size.Width, 1e-9)

	host := view.Groups[2].Items[0]
	require.Equal(t, "Não", host.Value)
	require.False(t, host.Positive)
	require.Zero(t, host.Width)

	require.Equal(t, "Sim", view.Groups[3].Items[0].Value)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(view.RawJSON), &raw))
	require.Contains(t, raw, "itens")
	require.Contains(t, view.RawJSON, "\n  ")
}

func TestBuildZeroImpactsHaveNoWidth(t *testing.T) {
	view := Build(listing.PredictionResponse{
		PredictedClass: listing.ClassLow,
		Explanation: &listing.Explanation{Items: []listing.ExplanationItem{
			{Label: "A", Group: "Tipo", Value: listing.NewFactorValue("x"), Impact: 0},
		}},
	})
	require.Zero(t, view.Groups[0].Items[0].Width)
	require.Equal(t, IconType, view.Groups[0].Icon)
}

func TestDisplayValue(t *testing.T) {
	require.Equal(t, "Sim", DisplayValue(listing.NewFactorValue(true)))
	require.Equal(t, "Não", DisplayValue(listing.NewFactorValue(false)))
	require.Equal(t, "3.14", DisplayValue(listing.NewFactorValue(3.14159)))
	require.Equal(t, "Entire home/apt", DisplayValue(listing.NewFactorValue("Entire home/apt")))
	require.Equal(t, "", DisplayValue(listing.FactorValue{}))
}
