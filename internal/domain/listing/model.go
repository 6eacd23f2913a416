package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PriceClass is the ordinal category returned by the predictor.
type PriceClass string

const (
	ClassLow    PriceClass = "baixo"
	ClassMedium PriceClass = "medio"
	ClassLuxury PriceClass = "luxo"
)

// PriceClasses lists the classes from cheapest to most expensive.
var PriceClasses = []PriceClass{ClassLow, ClassMedium, ClassLuxury}

// APIPredictionResponse is the raw reply of POST /predict.
type APIPredictionResponse struct {
	Status string    `json:"status"`
	Result APIResult `json:"resultado"`
}

// APIResult carries the prediction itself.
type APIResult struct {
	PredictedClass PriceClass                  `json:"classe_prevista"`
	Confidence     string                      `json:"confianca"`
	Probabilities  map[PriceClass]PercentValue `json:"probabilidades"`
	Explanation    *Explanation                `json:"explicacao_LIME"`
}

// PercentValue is a percentage sent either as text ("20.0", "20.0%") or as a number.
type PercentValue float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *PercentValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("parse percentage %q: %w", text, err)
		}
		*p = PercentValue(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PercentValue(v)
	return nil
}

// Explanation is the LIME breakdown of one prediction.
type Explanation struct {
	Items       []ExplanationItem `json:"itens"`
	CoveragePct float64           `json:"cobertura_pct"`
}

// ExplanationItem is one weighted factor.
type ExplanationItem struct {
	Feature   string       `json:"feature"`
	Label     string       `json:"rotulo"`
	Group     string       `json:"grupo"`
	Value     FactorValue  `json:"valor"`
	Impact    float64      `json:"impacto"`
	Direction string       `json:"direcao"`
	Reference *FactorValue `json:"valor_referencia,omitempty"`
}

// FactorValue keeps a factor's value exactly as sent: number, string or boolean.
type FactorValue struct {
	raw json.RawMessage
}

// NewFactorValue encodes v. It is meant for literals in tests and fixtures.
func NewFactorValue(v any) FactorValue {
	raw, err := json.Marshal(v)
	if err != nil {
		return FactorValue{}
	}
	return FactorValue{raw: raw}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *FactorValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v FactorValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Decoded returns the value as bool, float64, string or nil.
func (v FactorValue) Decoded() any {
	if len(v.raw) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(v.raw, &out); err != nil {
		return string(v.raw)
	}
	return out
}

// String formats the value plainly.
func (v FactorValue) String() string {
	switch typed := v.Decoded().(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return string(v.raw)
	}
}

// IsZero reports whether the value is absent or falsy.
func (v FactorValue) IsZero() bool {
	switch typed := v.Decoded().(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case float64:
		return typed == 0
	case bool:
		return !typed
	default:
		return false
	}
}

// Probabilities maps a class to its probability in [0,1].
type Probabilities map[PriceClass]float64

// PredictionResponse is the reshaped prediction consumed by the results view.
type PredictionResponse struct {
	PredictedClass PriceClass    `json:"classe_prevista"`
	Confidence     string        `json:"confianca"`
	Probabilities  Probabilities `json:"probabilidades"`
	Explanation    *Explanation  `json:"explicacao_LIME,omitempty"`
}

var errMissingClass = errors.New("response has no predicted class")

// Reshape converts percentage probabilities to fractions. Everything else passes through.
func (r APIPredictionResponse) Reshape() (PredictionResponse, error) {
	if strings.TrimSpace(string(r.Result.PredictedClass)) == "" {
		return PredictionResponse{}, errMissingClass
	}
	probs := make(Probabilities, len(r.Result.Probabilities))
	for class, pct := range r.Result.Probabilities {
		probs[class] = float64(pct) / 100
	}
	return PredictionResponse{
		PredictedClass: r.Result.PredictedClass,
		Confidence:     r.Result.Confidence,
		Probabilities:  probs,
		Explanation:    r.Result.Explanation,
	}, nil
}
