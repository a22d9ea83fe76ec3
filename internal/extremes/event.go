// Package extremes merges historical and forecast daily series by date and
// flags threshold breaches as extreme events. Everything here is a pure
// transform over already-fetched data.
package extremes

// EventType names the metric threshold that was breached.
type EventType string

const (
	HeavyRain   EventType = "Heavy Rain"
	HighMaxTemp EventType = "High Max Temperature"
	LowMinTemp  EventType = "Low Min Temperature"
)

// Kind distinguishes events found in a daily series from events found in a
// current-conditions snapshot.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindCurrent Kind = "current"
)

// Source tells which input an event was detected in.
type Source string

const (
	SourceHistorical Source = "historical"
	SourceForecast   Source = "forecast"
	SourceCurrent    Source = "current"
)

// ExtremeEvent is a single metric-threshold breach on a date (or at a snapshot time).
type ExtremeEvent struct {
	Type   EventType `json:"type"`
	Kind   Kind      `json:"kind"`
	Date   string    `json:"date"`
	Value  float64   `json:"value"`
	Source Source    `json:"source"`
}

// Label returns the Portuguese description used by the dashboard.
func (e ExtremeEvent) Label() string {
	var label string
	switch e.Type {
	case HeavyRain:
		label = "Chuva forte"
	case HighMaxTemp:
		label = "Temperatura máxima elevada"
	case LowMinTemp:
		label = "Temperatura mínima baixa"
	default:
		label = string(e.Type)
	}
	if e.Kind == KindCurrent {
		return label + " (agora)"
	}
	return label
}

// Unit returns the measurement unit of the event value.
func (e ExtremeEvent) Unit() string {
	if e.Type == HeavyRain {
		return "mm"
	}
	return "°C"
}
