package listing

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Messages keyed by "<field>.<tag>". Anything missing falls back to genericMessage.
var fieldMessages = map[string]string{
	"api_url.required":                "Invalid API URL",
	"api_url.url":                     "Invalid API URL",
	"latitude.min":                    "Invalid latitude",
	"latitude.max":                    "Invalid latitude",
	"longitude.min":                   "Invalid longitude",
	"longitude.max":                   "Invalid longitude",
	"room_type.required":              "Room type is required",
	"accommodates.min":                "Must accommodate at least 1 person",
	"bathrooms.min":                   "Bathrooms cannot be negative",
	"bedrooms.min":                    "Bedrooms cannot be negative",
	"beds.min":                        "Beds cannot be negative",
	"host_response_time.required":     "Host response time is required",
	"host_listings_count.min":         "Listings count cannot be negative",
	"host_total_listings_count.min":   "Total listings count cannot be negative",
	"neighbourhood_cleansed.required": "Neighbourhood is required",
	"property_type.required":          "Property type is required",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			return field.Tag.Get("form")
		})
	})
	return validate
}

// Validate coerces raw values into a PredictionInput and checks every
// constraint. The returned FieldErrors is nil when the input is valid.
func Validate(values FormValues) (PredictionInput, FieldErrors) {
	var input PredictionInput
	errs := FieldErrors{}
	coerce(values, &input, errs)

	if err := schemaValidator().Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add(FormErrorKey, err.Error())
			return input, errs
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, failed := errs[field]; failed {
				// Coercion already explained what is wrong with this field.
				continue
			}
			errs.Add(field, messageFor(fe))
		}
	}

	if len(errs) == 0 {
		return input, nil
	}
	return input, errs
}

// coerce fills dst from values, following the same rules a browser applies to
// Number(): surrounding blanks are ignored and an empty string is zero.
func coerce(values FormValues, dst *PredictionInput, errs FieldErrors) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("form")
		raw, present := values[name]
		field := rv.Field(i)
		if !present {
			errs.Add(name, "Required")
			continue
		}
		if field.Kind() == reflect.String {
			field.SetString(raw)
			continue
		}

		num, msg := parseNumber(raw)
		if msg != "" {
			errs.Add(name, msg)
			continue
		}
		switch field.Kind() {
		case reflect.Int:
			if num != math.Trunc(num) {
				errs.Add(name, "Expected integer, received float")
				continue
			}
			// float64(MaxInt64) rounds up to 2^63, which no int64 holds.
			if num >= math.MaxInt64 {
				errs.Add(name, fmt.Sprintf("Number must be less than or equal to %d", int64(math.MaxInt64)))
				continue
			}
			if num < math.MinInt64 {
				errs.Add(name, fmt.Sprintf("Number must be greater than or equal to %d", int64(math.MinInt64)))
				continue
			}
			field.SetInt(int64(num))
		case reflect.Float64:
			field.SetFloat(num)
		}
	}
}

func parseNumber(raw string) (float64, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ""
	}
	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(num) {
		return 0, "Expected number, received nan"
	}
	if math.IsInf(num, 0) {
		return 0, "Number must be finite"
	}
	return num, ""
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return genericMessage(fe)
}

func genericMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "oneof":
		options := strings.Fields(fe.Param())
		quoted := make([]string, len(options))
		for i, o := range options {
			quoted[i] = "'" + o + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(quoted, " | "), fe.Value())
	case "required":
		return "Required"
	case "url":
		return "Invalid url"
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}
