package extremes

import (
	"github.com/gustavopmaia/gs-andre/internal/weather"
)

// ChartRow is a chart-ready merged record. Missing values are drawn as zero.
type ChartRow struct {
	Date        string  `json:"data"`
	PrecipHist  float64 `json:"precipitacao_hist"`
	TempMaxHist float64 `json:"temp_max_hist"`
	TempMinHist float64 `json:"temp_min_hist"`
	PrecipPrev  float64 `json:"precipitacao_prev"`
	TempMaxPrev float64 `json:"temp_max_prev"`
	TempMinPrev float64 `json:"temp_min_prev"`
}

// HourlyPoint is a chart-ready hourly forecast point.
type HourlyPoint struct {
	Time          string  `json:"data"`
	Precipitation float64 `json:"precipitacao"`
	Temperature   float64 `json:"temperatura"`
}

// ChartRows converts merged records for plotting.
func ChartRows(records []MergedDailyRecord) []ChartRow {
	rows := make([]ChartRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ChartRow{
			Date:        r.Date,
			PrecipHist:  orZero(r.PrecipHist),
			TempMaxHist: orZero(r.TempMaxHist),
			TempMinHist: orZero(r.TempMinHist),
			PrecipPrev:  orZero(r.PrecipPrev),
			TempMaxPrev: orZero(r.TempMaxPrev),
			TempMinPrev: orZero(r.TempMinPrev),
		})
	}
	return rows
}

// HourlyChart converts the hourly forecast block for plotting.
func HourlyChart(h weather.HourlySeries) []HourlyPoint {
	points := make([]HourlyPoint, 0, len(h.Time))
	for i, t := range h.Time {
		points = append(points, HourlyPoint{
			Time:          t,
			Precipitation: orZero(weather.ValueAt(h.Precipitation, i)),
			Temperature:   orZero(weather.ValueAt(h.Temperature, i)),
		})
	}
	return points
}

// Summary aggregates a merged record set.
type Summary struct {
	Days              int     `json:"dias"`
	HistoricalDays    int     `json:"dias_historicos"`
	ForecastDays      int     `json:"dias_previsao"`
	TotalPrecipHist   float64 `json:"precipitacao_total_hist"`
	TotalPrecipPrev   float64 `json:"precipitacao_total_prev"`
	HighestMaxTemp    float64 `json:"maior_temp_max"`
	HighestMaxTempDay string  `json:"dia_maior_temp_max,omitempty"`
	LowestMinTemp     float64 `json:"menor_temp_min"`
	LowestMinTempDay  string  `json:"dia_menor_temp_min,omitempty"`
	EventCount        int     `json:"total_eventos"`
}

// Summarize sums precipitation (missing counts as zero) and finds the extreme
// temperatures among the values that are present.
func Summarize(records []MergedDailyRecord, events []ExtremeEvent) Summary {
	s := Summary{Days: len(records), EventCount: len(events)}

	var haveMax, haveMin bool
	consider := func(date string, tmax, tmin *float64) {
		if tmax != nil && (!haveMax || *tmax > s.HighestMaxTemp) {
			s.HighestMaxTemp = *tmax
			s.HighestMaxTempDay = date
			haveMax = true
		}
		if tmin != nil && (!haveMin || *tmin < s.LowestMinTemp) {
			s.LowestMinTemp = *tmin
			s.LowestMinTempDay = date
			haveMin = true
		}
	}

	for _, r := range records {
		if r.HasHistorical() {
			s.HistoricalDays++
		}
		if r.HasForecast() {
			s.ForecastDays++
		}
		s.TotalPrecipHist += orZero(r.PrecipHist)
		s.TotalPrecipPrev += orZero(r.PrecipPrev)
		consider(r.Date, r.TempMaxHist, r.TempMinHist)
		consider(r.Date, r.TempMaxPrev, r.TempMinPrev)
	}
	return s
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
