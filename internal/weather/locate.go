package weather

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locator resolves queries to coordinates. Either lookup may be nil.
type Locator struct {
	zip    ZipLookup
	city   CityLookup
	logger *slog.Logger
}

// NewLocator creates a Locator.
func NewLocator(zip ZipLookup, city CityLookup, logger *slog.Logger) *Locator {
	return &Locator{zip: zip, city: city, logger: logger}
}

// Locate resolves q, trying the ZIP code first and the city name second.
// Lookup failures are logged and fall through; ErrLocationNotFound is
// returned when nothing matches.
func (l *Locator) Locate(ctx context.Context, q Query) (Location, error) {
	state := strings.TrimSpace(q.State)
	country := strings.TrimSpace(q.Country)
	if country == "" && state != "" {
		country = "US"
	}

	if zip := strings.TrimSpace(q.ZipCode); zip != "" && l.zip != nil {
		zipCountry := "us"
		if country != "" && !strings.EqualFold(country, "US") {
			zipCountry = strings.ToLower(country)
		}
		place, ok, err := l.zip.LookupZip(ctx, zipCountry, zip)
		switch {
		case err != nil:
			l.logger.Warn("zip lookup failed", "zip", zip, "country", zipCountry, "error", err)
		case ok && hasCoords(place):
			return Location{City: place.Name, State: place.State, Lat: place.Lat, Lon: place.Lon, Country: country}, nil
		}
	}

	if city := strings.TrimSpace(q.City); city != "" && l.city != nil {
		city = cases.Title(language.Und).String(city)
		query := city
		if state != "" {
			query += "," + state
		}
		if country != "" {
			query += "," + country
		}
		place, ok, err := l.city.LookupCity(ctx, query)
		switch {
		case err != nil:
			l.logger.Warn("city lookup failed", "query", query, "error", err)
		case ok && hasCoords(place):
			loc := Location{City: place.Name, State: place.State, Lat: place.Lat, Lon: place.Lon, Country: country}
			if loc.City == "" {
				loc.City = city
			}
			if loc.State == "" {
				loc.State = state
			}
			return loc, nil
		}
	}

	return Location{}, ErrLocationNotFound
}

func hasCoords(p Place) bool {
	return p.Lat != 0 && p.Lon != 0
}
