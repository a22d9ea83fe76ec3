package extremes

import (
	"sort"

	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// MergedDailyRecord is the union of historical (_hist) and forecast (_prev)
// values for one date. A nil field means the source lacks the date or the
// provider reported null; it is never coerced to zero here. InHistorical and
// InForecast tell the two apart.
type MergedDailyRecord struct {
	Date        string   `json:"date"`
	TempMaxHist *float64 `json:"temp_max_hist,omitempty"`
	TempMinHist *float64 `json:"temp_min_hist,omitempty"`
	PrecipHist  *float64 `json:"precip_hist,omitempty"`
	TempMaxPrev *float64 `json:"temp_max_prev,omitempty"`
	TempMinPrev *float64 `json:"temp_min_prev,omitempty"`
	PrecipPrev  *float64 `json:"precip_prev,omitempty"`

	InHistorical bool `json:"-"`
	InForecast   bool `json:"-"`
}

// HasHistorical reports whether the historical series had the date, even if
// every value for it was null.
func (r MergedDailyRecord) HasHistorical() bool {
	return r.InHistorical || r.TempMaxHist != nil || r.TempMinHist != nil || r.PrecipHist != nil
}

// HasForecast reports whether the forecast series had the date.
func (r MergedDailyRecord) HasForecast() bool {
	return r.InForecast || r.TempMaxPrev != nil || r.TempMinPrev != nil || r.PrecipPrev != nil
}

// Merge builds one record per unique date: historical values first, then
// forecast values augmenting an existing date or inserting a new one. Output is
// in chronological order. Inputs are only read.
func Merge(hist, forecast *weather.DailySeries) []MergedDailyRecord {
	byDate := make(map[string]*MergedDailyRecord)
	var order []string

	get := func(date string) *MergedDailyRecord {
		rec, ok := byDate[date]
		if !ok {
			rec = &MergedDailyRecord{Date: date}
			byDate[date] = rec
			order = append(order, date)
		}
		return rec
	}

	if hist != nil {
		for i, date := range hist.Time {
			rec := get(date)
			rec.InHistorical = true
			rec.PrecipHist = copyValue(weather.ValueAt(hist.PrecipitationSum, i))
			rec.TempMaxHist = copyValue(weather.ValueAt(hist.TemperatureMax, i))
			rec.TempMinHist = copyValue(weather.ValueAt(hist.TemperatureMin, i))
		}
	}
	if forecast != nil {
		for i, date := range forecast.Time {
			rec := get(date)
			rec.InForecast = true
			rec.PrecipPrev = copyValue(weather.ValueAt(forecast.PrecipitationSum, i))
			rec.TempMaxPrev = copyValue(weather.ValueAt(forecast.TemperatureMax, i))
			rec.TempMinPrev = copyValue(weather.ValueAt(forecast.TemperatureMin, i))
		}
	}

	sortDates(order)

	records := make([]MergedDailyRecord, 0, len(order))
	for _, date := range order {
		records = append(records, *byDate[date])
	}
	return records
}

// sortDates orders ISO date keys chronologically. Keys that do not parse fall
// back to plain string comparison.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		a, errA := weather.ParseDate(dates[i])
		b, errB := weather.ParseDate(dates[j])
		if errA == nil && errB == nil {
			return a.Before(b)
		}
		return dates[i] < dates[j]
	})
}

// copyValue detaches the record from the caller's arrays.
func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
