package listing

import "sort"

// Form field names shared by the HTML form, the JSON API and the upstream payload.
const (
	FieldAPIURL                 = "api_url"
	FieldLatitude               = "latitude"
	FieldLongitude              = "longitude"
	FieldRoomType               = "room_type"
	FieldAccommodates           = "accommodates"
	FieldBathrooms              = "bathrooms"
	FieldBedrooms               = "bedrooms"
	FieldBeds                   = "beds"
	FieldHostResponseTime       = "host_response_time"
	FieldHostResponseRate       = "host_response_rate"
	FieldHostAcceptanceRate     = "host_acceptance_rate"
	FieldHostListingsCount      = "host_listings_count"
	FieldHostTotalListingsCount = "host_total_listings_count"
	FieldHostHasProfilePic      = "host_has_profile_pic"
	FieldHostIdentityVerified   = "host_identity_verified"
	FieldMinimumNights          = "minimum_nights"
	FieldMaximumNights          = "maximum_nights"
	FieldMinimumMinimumNights   = "minimum_minimum_nights"
	FieldMaximumMinimumNights   = "maximum_minimum_nights"
	FieldMinimumMaximumNights   = "minimum_maximum_nights"
	FieldMaximumMaximumNights   = "maximum_maximum_nights"
	FieldMinimumNightsAvgNTM    = "minimum_nights_avg_ntm"
	FieldMaximumNightsAvgNTM    = "maximum_nights_avg_ntm"
	FieldHasAvailability        = "has_availability"
	FieldHostDaysActive         = "host_days_active"
	FieldAmenitiesCount         = "amenities_count"
	FieldNeighbourhood          = "neighbourhood_cleansed"
	FieldPropertyType           = "property_type"

	// FormErrorKey holds messages that belong to the form rather than a field.
	FormErrorKey = "_form"
)

// Flag values accepted for the boolean listing attributes.
const (
	FlagTrue  = "t"
	FlagFalse = "f"
)

// FormValues are raw submitted values keyed by field name.
type FormValues map[string]string

// Clone returns an independent copy.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FieldErrors maps a field name to its human readable messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// First returns the first message recorded for field.
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields lists the fields with errors in lexical order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PredictionInput is the validated and coerced form. The struct tags are the
// schema: `form` names the field, `validate` carries its constraints.
type PredictionInput struct {
	APIURL                 string  `form:"api_url" validate:"required,url"`
	Latitude               float64 `form:"latitude" validate:"min=-90,max=90"`
	Longitude              float64 `form:"longitude" validate:"min=-180,max=180"`
	RoomType               string  `form:"room_type" validate:"required"`
	Accommodates           int     `form:"accommodates" validate:"min=1"`
	Bathrooms              float64 `form:"bathrooms" validate:"min=0"`
	Bedrooms               float64 `form:"bedrooms" validate:"min=0"`
	Beds                   float64 `form:"beds" validate:"min=0"`
	HostResponseTime       string  `form:"host_response_time" validate:"required"`
	HostResponseRate       float64 `form:"host_response_rate" validate:"min=0,max=100"`
	HostAcceptanceRate     float64 `form:"host_acceptance_rate" validate:"min=0,max=100"`
	HostListingsCount      int     `form:"host_listings_count" validate:"min=0"`
	HostTotalListingsCount int     `form:"host_total_listings_count" validate:"min=0"`
	HostHasProfilePic      string  `form:"host_has_profile_pic" validate:"oneof=t f"`
	HostIdentityVerified   string  `form:"host_identity_verified" validate:"oneof=t f"`
	MinimumNights          int     `form:"minimum_nights" validate:"min=1"`
	MaximumNights          int     `form:"maximum_nights" validate:"min=1"`
	MinimumMinimumNights   int     `form:"minimum_minimum_nights" validate:"min=1"`
	MaximumMinimumNights   int     `form:"maximum_minimum_nights" validate:"min=1"`
	MinimumMaximumNights   int     `form:"minimum_maximum_nights" validate:"min=1"`
	MaximumMaximumNights   int     `form:"maximum_maximum_nights" validate:"min=1"`
	MinimumNightsAvgNTM    float64 `form:"minimum_nights_avg_ntm" validate:"min=0"`
	MaximumNightsAvgNTM    float64 `form:"maximum_nights_avg_ntm" validate:"min=0"`
	HasAvailability        string  `form:"has_availability" validate:"oneof=t f"`
	HostDaysActive         int     `form:"host_days_active" validate:"min=0"`
	AmenitiesCount         int     `form:"amenities_count" validate:"min=0"`
	NeighbourhoodCleansed  string  `form:"neighbourhood_cleansed" validate:"required"`
	PropertyType           string  `form:"property_type" validate:"required"`
}

// APIPayload is the body sent to the prediction service: rates as fractions,
// flags as booleans, no api_url.
type APIPayload struct {
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	RoomType               string  `json:"room_type"`
	Accommodates           int     `json:"accommodates"`
	Bathrooms              float64 `json:"bathrooms"`
	Bedrooms               float64 `json:"bedrooms"`
	Beds                   float64 `json:"beds"`
	HostResponseTime       string  `json:"host_response_time"`
	HostResponseRate       float64 `json:"host_response_rate"`
	HostAcceptanceRate     float64 `json:"host_acceptance_rate"`
	HostListingsCount      int     `json:"host_listings_count"`
	HostTotalListingsCount int     `json:"host_total_listings_count"`
	HostHasProfilePic      bool    `json:"host_has_profile_pic"`
	HostIdentityVerified   bool    `json:"host_identity_verified"`
	MinimumNights          int     `json:"minimum_nights"`
	MaximumNights          int     `json:"maximum_nights"`
	MinimumMinimumNights   int     `json:"minimum_minimum_nights"`
	MaximumMinimumNights   int     `json:"maximum_minimum_nights"`
	MinimumMaximumNights   int     `json:"minimum_maximum_nights"`
	MaximumMaximumNights   int     `json:"maximum_maximum_nights"`
	MinimumNightsAvgNTM    float64 `json:"minimum_nights_avg_ntm"`
	MaximumNightsAvgNTM    float64 `json:"maximum_nights_avg_ntm"`
	HasAvailability        bool    `json:"has_availability"`
	HostDaysActive         int     `json:"host_days_active"`
	AmenitiesCount         int     `json:"amenities_count"`
	NeighbourhoodCleansed  string  `json:"neighbourhood_cleansed"`
	PropertyType           string  `json:"property_type"`
}
