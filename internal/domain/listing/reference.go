package listing

import (
	"strconv"

	"github.com/yanqian/listing-insights/internal/domain/geo"
)

// EnumKind names an enumeration the prediction service can publish.
type EnumKind string

const (
	EnumRoomType         EnumKind = "room_type"
	EnumHostResponseTime EnumKind = "host_response_time"
)

// DefaultRoomTypes is used whenever the service cannot provide the list.
var DefaultRoomTypes = []string{"Entire home/apt", "Private room", "Shared room", "Hotel room"}

// DefaultResponseTimes is used whenever the service cannot provide the list.
var DefaultResponseTimes = []string{"within an hour", "within a few hours", "within a day", "a few days or more"}

// PropertyTypes are the property categories the model was trained on.
var PropertyTypes = []string{
	"Entire rental unit",
	"Entire condo",
	"Entire home",
	"Entire loft",
	"Entire serviced apartment",
	"Entire guest suite",
	"Entire villa",
	"Entire townhouse",
	"Private room in rental unit",
	"Private room in home",
	"Private room in condo",
	"Private room in guesthouse",
	"Private room in bed and breakfast",
	"Shared room in rental unit",
	"Room in hotel",
	"Room in boutique hotel",
	"Room in aparthotel",
	"Room in hostel",
}

// DefaultEnum returns the built-in values for kind.
func DefaultEnum(kind EnumKind) []string {
	var src []string
	switch kind {
	case EnumRoomType:
		src = DefaultRoomTypes
	case EnumHostResponseTime:
		src = DefaultResponseTimes
	}
	return append([]string(nil), src...)
}

// FieldSpec describes how a form input is presented.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	Step        string
}

// NumericFields lists the free numeric inputs in display order.
var NumericFields = []FieldSpec{
	{Name: FieldLatitude, Label: "Latitude", Placeholder: "e.g., -22.9697", Step: "any"},
	{Name: FieldLongitude, Label: "Longitude", Placeholder: "e.g., -43.1869", Step: "any"},
	{Name: FieldAccommodates, Label: "Accommodates", Placeholder: "e.g., 4", Step: "1"},
	{Name: FieldBathrooms, Label: "Bathrooms", Placeholder: "e.g., 2", Step: "any"},
	{Name: FieldBedrooms, Label: "Bedrooms", Placeholder: "e.g., 3", Step: "any"},
	{Name: FieldBeds, Label: "Beds", Placeholder: "e.g., 3", Step: "any"},
	{Name: FieldHostResponseRate, Label: "Host Response Rate", Placeholder: "0-100", Step: "any"},
	{Name: FieldHostAcceptanceRate, Label: "Host Acceptance Rate", Placeholder: "0-100", Step: "any"},
	{Name: FieldHostListingsCount, Label: "Host Listings", Placeholder: "e.g., 1", Step: "1"},
	{Name: FieldHostTotalListingsCount, Label: "Host Total Listings", Placeholder: "e.g., 1", Step: "1"},
	{Name: FieldMinimumNights, Label: "Minimum Nights", Placeholder: "e.g., 1", Step: "1"},
	{Name: FieldMaximumNights, Label: "Maximum Nights", Placeholder: "e.g., 30", Step: "1"},
	{Name: FieldMinimumMinimumNights, Label: "Min Minimum Nights", Placeholder: "e.g., 1", Step: "1"},
	{Name: FieldMaximumMinimumNights, Label: "Max Minimum Nights", Placeholder: "e.g., 1", Step: "1"},
	{Name: FieldMinimumMaximumNights, Label: "Min Maximum Nights", Placeholder: "e.g., 365", Step: "1"},
	{Name: FieldMaximumMaximumNights, Label: "Max Maximum Nights", Placeholder: "e.g., 365", Step: "1"},
	{Name: FieldMinimumNightsAvgNTM, Label: "Min Nights Avg", Placeholder: "e.g., 2.5", Step: "any"},
	{Name: FieldMaximumNightsAvgNTM, Label: "Max Nights Avg", Placeholder: "e.g., 120.3", Step: "any"},
	{Name: FieldHostDaysActive, Label: "Host Days Active", Placeholder: "e.g., 730", Step: "1"},
	{Name: FieldAmenitiesCount, Label: "Amenities Count", Placeholder: "e.g., 15", Step: "1"},
}

// FlagFields lists the t/f switches in display order.
var FlagFields = []FieldSpec{
	{Name: FieldHostHasProfilePic, Label: "Has Profile Pic?"},
	{Name: FieldHostIdentityVerified, Label: "Identity Verified?"},
	{Name: FieldHasAvailability, Label: "Has Availability?"},
}

// DefaultValues are the values a fresh form starts with.
func DefaultValues(apiURL string) FormValues {
	return FormValues{
		FieldAPIURL:                 apiURL,
		FieldLatitude:               formatNumber(geo.RioCenter.Lat),
		FieldLongitude:              formatNumber(geo.RioCenter.Lon),
		FieldRoomType:               DefaultRoomTypes[0],
		FieldAccommodates:           "2",
		FieldBathrooms:              "1",
		FieldBedrooms:               "1",
		FieldBeds:                   "1",
		FieldHostResponseTime:       DefaultResponseTimes[0],
		FieldHostResponseRate:       "100",
		FieldHostAcceptanceRate:     "100",
		FieldHostListingsCount:      "1",
		FieldHostTotalListingsCount: "1",
		FieldHostHasProfilePic:      FlagTrue,
		FieldHostIdentityVerified:   FlagTrue,
		FieldMinimumNights:          "1",
		FieldMaximumNights:          "1125",
		FieldMinimumMinimumNights:   "1",
		FieldMaximumMinimumNights:   "1",
		FieldMinimumMaximumNights:   "1125",
		FieldMaximumMaximumNights:   "1125",
		FieldMinimumNightsAvgNTM:    "1",
		FieldMaximumNightsAvgNTM:    "1125",
		FieldHasAvailability:        FlagTrue,
		FieldHostDaysActive:         "365",
		FieldAmenitiesCount:         "20",
		FieldNeighbourhood:          "Copacabana",
		FieldPropertyType:           PropertyTypes[0],
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
