package extremes

import (
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// Thresholds are the fixed limits an observation is compared against.
// Precipitation and max temperature trip at or above their limit; min
// temperature trips at or below.
type Thresholds struct {
	HeavyRainMM  float64 `validate:"gt=0"`
	HighMaxTempC float64
	LowMinTempC  float64 `validate:"ltfield=HighMaxTempC"`
}

// DefaultThresholds returns 20 mm, 35 °C and 5 °C.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeavyRainMM:  20,
		HighMaxTempC: 35,
		LowMinTempC:  5,
	}
}

// Detector flags extreme events against a set of thresholds.
type Detector struct {
	Thresholds Thresholds
}

// NewDetector creates a Detector.
func NewDetector(t Thresholds) Detector {
	return Detector{Thresholds: t}
}

// ScanDaily walks the series in index order and tests every metric independently.
// A date can contribute zero to three events; nil values never trigger.
func (d Detector) ScanDaily(series weather.DailySeries, source Source) []ExtremeEvent {
	var events []ExtremeEvent
	for i, date := range series.Time {
		events = d.appendChecks(events, KindDaily, source, date,
			weather.ValueAt(series.PrecipitationSum, i),
			weather.ValueAt(series.TemperatureMax, i),
			weather.ValueAt(series.TemperatureMin, i),
		)
	}
	return events
}

// ScanCurrent applies the same thresholds to a snapshot. The single temperature
// reading is tested against both the high and the low limit.
func (d Detector) ScanCurrent(c *weather.CurrentConditions) []ExtremeEvent {
	if c == nil {
		return nil
	}
	temp := c.Temperature
	return d.appendChecks(nil, KindCurrent, SourceCurrent, c.Time, c.Precipitation, &temp, &temp)
}

func (d Detector) appendChecks(events []ExtremeEvent, kind Kind, source Source, date string, precip, tmax, tmin *float64) []ExtremeEvent {
	if precip != nil && *precip >= d.Thresholds.HeavyRainMM {
		events = append(events, ExtremeEvent{Type: HeavyRain, Kind: kind, Date: date, Value: *precip, Source: source})
	}
	if tmax != nil && *tmax >= d.Thresholds.HighMaxTempC {
		events = append(events, ExtremeEvent{Type: HighMaxTemp, Kind: kind, Date: date, Value: *tmax, Source: source})
	}
	if tmin != nil && *tmin <= d.Thresholds.LowMinTempC {
		events = append(events, ExtremeEvent{Type: LowMinTemp, Kind: kind, Date: date, Value: *tmin, Source: source})
	}
	return events
}

// Report is everything the dashboard derives from one fetch cycle.
type Report struct {
	Records []MergedDailyRecord `json:"registros"`
	Events  []ExtremeEvent      `json:"eventos"`
	Summary Summary             `json:"resumo"`
}

// Analyze merges the two daily series and scans historical, forecast and
// current inputs in that order. Any input may be nil.
func (d Detector) Analyze(hist, forecast *weather.DailySeries, current *weather.CurrentConditions) Report {
	records := Merge(hist, forecast)

	events := []ExtremeEvent{}
	if hist != nil {
		events = append(events, d.ScanDaily(*hist, SourceHistorical)...)
	}
	if forecast != nil {
		events = append(events, d.ScanDaily(*forecast, SourceForecast)...)
	}
	events = append(events, d.ScanCurrent(current)...)

	return Report{
		Records: records,
		Events:  events,
		Summary: Summarize(records, events),
	}
}
