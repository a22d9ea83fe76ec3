package weather

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Location is the single point this deployment tracks.
// Timezone is an IANA name; it decides what "today" means for the history window
// and is forwarded to the provider so daily buckets line up with local days.
type Location struct {
	Coordinates
	Timezone string `json:"timezone" validate:"required"`
	Label    string `json:"label,omitempty"`
}

// DailySeries holds one value per calendar day. All arrays share the length of
// Time and Time[i] is the date for index i in every other array. A nil element
// means the provider had no value for that day.
type DailySeries struct {
	Time             []string   `json:"time" validate:"required"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
}

// Len returns the number of days in the series.
func (s DailySeries) Len() int {
	return len(s.Time)
}

// HourlySeries is the short-range hourly forecast block.
type HourlySeries struct {
	Time          []string   `json:"time" validate:"required"`
	Precipitation []*float64 `json:"precipitation"`
	Temperature   []*float64 `json:"temperature_2m"`
}

// CurrentConditions is a point-in-time snapshot (Open-Meteo current_weather).
type CurrentConditions struct {
	Time          string   `json:"time"`
	Temperature   float64  `json:"temperature"`
	WindSpeed     float64  `json:"windspeed"`
	WindDirection float64  `json:"winddirection"`
	WeatherCode   int      `json:"weathercode"`
	IsDay         int      `json:"is_day"`
	Precipitation *float64 `json:"precipitation,omitempty"`
}

// ClimateData is the combined historical and short-range forecast payload.
type ClimateData struct {
	Historical DailySeries  `json:"historico"`
	Forecast   HourlySeries `json:"previsao"`
}

// ValueAt returns the element at index i, or nil when i is out of range.
// Series coming from outside the proxy may violate the equal-length invariant;
// callers treat a short array as missing values.
func ValueAt(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

// Float returns a pointer to v. Handy for building series in code and tests.
func Float(v float64) *float64 {
	return &v
}
