package results

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/yanqian/listing-insights/internal/domain/listing"
)

// Palette names the colour family used for a price class badge.
type Palette string

const (
	PaletteGreen  Palette = "green"
	PaletteBlue   Palette = "blue"
	PaletteOrange Palette = "orange"
)

var palettes = map[listing.PriceClass]Palette{
	listing.ClassLow:    PaletteGreen,
	listing.ClassMedium: PaletteBlue,
	listing.ClassLuxury: PaletteOrange,
}

// Icon keys for the known explanation groups.
const (
	IconLocation = "map-pin"
	IconSize     = "building"
	IconHost     = "user"
	IconType     = "settings"
	IconOther    = "help-circle"
)

var groupIcons = map[string]string{
	"Localizacao": IconLocation,
	"Tamanho":     IconSize,
	"Host":        IconHost,
	"Tipo":        IconType,
}

// View is everything the results panel needs, already formatted.
type View struct {
	Class       listing.PriceClass
	Palette     Palette
	Confidence  string
	Bars        []ProbabilityBar
	Groups      []Group
	HasFactors  bool
	CoveragePct string
	RawJSON     string
}

// ProbabilityBar is one class probability, Percent in [0,100].
type ProbabilityBar struct {
	Class   listing.PriceClass
	Percent float64
	Text    string
}

// Group collects the explanation items sharing a grupo.
type Group struct {
	Name  string
	Icon  string
	Items []Item
}

// Item is one rendered explanation factor.
type Item struct {
	Label     string
	Value     string
	Reference string
	Positive  bool
	Width     float64
	Tooltip   string
}

// Build maps a prediction into its view model.
func Build(resp listing.PredictionResponse) View {
	view := View{
		Class:      resp.PredictedClass,
		Palette:    PaletteFor(resp.PredictedClass),
		Confidence: resp.Confidence,
		Bars:       bars(resp.Probabilities),
	}
	if resp.Explanation == nil {
		return view
	}
	view.HasFactors = true
	view.Groups = groups(resp.Explanation.Items)
	view.CoveragePct = strconv.FormatFloat(resp.Explanation.CoveragePct, 'f', -1, 64)
	if raw, err := json.MarshalIndent(resp.Explanation, "", "  "); err == nil {
		view.RawJSON = string(raw)
	}
	return view
}

// PaletteFor returns the badge palette, falling back to the medium class colour.
func PaletteFor(class listing.PriceClass) Palette {
	if p, ok := palettes[class]; ok {
		return p
	}
	return palettes[listing.ClassMedium]
}

// GroupIcon returns the icon key for a group name.
func GroupIcon(group string) string {
	if icon, ok := groupIcons[group]; ok {
		return icon
	}
	return IconOther
}

func bars(probs listing.Probabilities) []ProbabilityBar {
	out := make([]ProbabilityBar, 0, len(probs))
	for class, p := range probs {
		pct := p * 100
		out = append(out, ProbabilityBar{Class: class, Percent: pct, Text: fmt.Sprintf("%.1f%%", pct)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return classRank(out[i].Class) < classRank(out[j].Class)
	})
	return out
}

// classRank orders known classes cheapest first; unknown classes sort after them by name.
func classRank(class listing.PriceClass) string {
	for i, known := range listing.PriceClasses {
		if known == class {
			return strconv.Itoa(i)
		}
	}
	return "~" + string(class)
}

func groups(items []listing.ExplanationItem) []Group {
	maxImpact := 0.0
	for _, item := range items {
		maxImpact = math.Max(maxImpact, math.Abs(item.Impact))
	}

	var out []Group
	index := map[string]int{}
	for _, item := range items {
		i, ok := index[item.Group]
		if !ok {
			i = len(out)
			index[item.Group] = i
			out = append(out, Group{Name: item.Group, Icon: GroupIcon(item.Group)})
		}
		out[i].Items = append(out[i].Items, renderItem(item, maxImpact))
	}
	return out
}

func renderItem(item listing.ExplanationItem, maxImpact float64) Item {
	rendered := Item{
		Label:    item.Label,
		Value:    DisplayValue(item.Value),
		Positive: item.Impact > 0,
		Tooltip:  fmt.Sprintf("Impacto: %.4f (%s)", item.Impact, item.Direction),
	}
	if maxImpact > 0 {
		rendered.Width = math.Abs(item.Impact) / maxImpact * 100
	}
	if item.Reference != nil && !item.Reference.IsZero() {
		rendered.Reference = item.Reference.String()
	}
	return rendered
}

// DisplayValue formats a factor value: booleans as Sim/Não, numbers with two decimals.
func DisplayValue(v listing.FactorValue) string {
	switch typed := v.Decoded().(type) {
	case bool:
		if typed {
			return "Sim"
		}
		return "Não"
	case float64:
		return strconv.FormatFloat(typed, 'f', 2, 64)
	default:
		return v.String()
	}
}
