// Package weather implements Weather Alert Pro, the weather lookup service
// linked from the homepage navigation.
//
// # Location Resolution
//
// A Query names a place by ZIP/postal code or by city, optionally narrowed by
// state and country. A state without a country implies the United States.
// ZIP codes are resolved through Zippopotam (US unless another country is
// given); when that fails, or no ZIP is given, the city name is title-cased
// and resolved through the OpenWeatherMap direct geocoder as
// "City[,State][,Country]". A zero latitude or longitude counts as not found.
//
// # Features
//
//	weather      current conditions plus derived units
//	forecast     daily and hourly forecasts
//	alerts       active government weather alerts
//	air_quality  OpenWeatherMap air pollution payload, unmodified
//	uv           UV index with sunrise, sunset, clouds, humidity, pressure
//
// Derived units on current conditions:
//
//	wind_direction_compass  16-point compass name of wind_deg
//	wind_speed_mph          wind_speed × 2.23694, two decimals
//	pressure_inhg           pressure (hPa) × 0.02953, two decimals
//
// # Quota and Caching
//
// Every feature request counts against a daily quota that resets with the
// local date. Results are cached per feature under "lat,lon,units" (weather,
// forecast, alerts) or "lat,lon" (air_quality, uv).
package weather
