package listing

// ToPayload converts a validated input into the shape the prediction service
// expects. It never fails for input that passed Validate.
func ToPayload(in PredictionInput) APIPayload {
	return APIPayload{
		Latitude:               in.Latitude,
		Longitude:              in.Longitude,
		RoomType:               in.RoomType,
		Accommodates:           in.Accommodates,
		Bathrooms:              in.Bathrooms,
		Bedrooms:               in.Bedrooms,
		Beds:                   in.Beds,
		HostResponseTime:       in.HostResponseTime,
		HostResponseRate:       percentToFraction(in.HostResponseRate),
		HostAcceptanceRate:     percentToFraction(in.HostAcceptanceRate),
		HostListingsCount:      in.HostListingsCount,
		HostTotalListingsCount: in.HostTotalListingsCount,
		HostHasProfilePic:      flagToBool(in.HostHasProfilePic),
		HostIdentityVerified:   flagToBool(in.HostIdentityVerified),
		MinimumNights:          in.MinimumNights,
		MaximumNights:          in.MaximumNights,
		MinimumMinimumNights:   in.MinimumMinimumNights,
		MaximumMinimumNights:   in.MaximumMinimumNights,
		MinimumMaximumNights:   in.MinimumMaximumNights,
		MaximumMaximumNights:   in.MaximumMaximumNights,
		MinimumNightsAvgNTM:    in.MinimumNightsAvgNTM,
		MaximumNightsAvgNTM:    in.MaximumNightsAvgNTM,
		HasAvailability:        flagToBool(in.HasAvailability),
		HostDaysActive:         in.HostDaysActive,
		AmenitiesCount:         in.AmenitiesCount,
		NeighbourhoodCleansed:  in.NeighbourhoodCleansed,
		PropertyType:           in.PropertyType,
	}
}

func percentToFraction(v float64) float64 {
	return v / 100
}

func flagToBool(v string) bool {
	return v == FlagTrue
}
