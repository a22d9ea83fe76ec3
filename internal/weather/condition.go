package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionFog     Condition = "fog"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
)

// ConditionFromCode maps a WMO weather code (as used by Open-Meteo) to a Condition.
func ConditionFromCode(code int) Condition {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// Label returns the Portuguese label shown on the dashboard.
func (c Condition) Label() string {
	switch c {
	case ConditionClear:
		return "Céu limpo"
	case ConditionCloudy:
		return "Nublado"
	case ConditionFog:
		return "Neblina"
	case ConditionRain:
		return "Chuva"
	case ConditionSnow:
		return "Neve"
	case ConditionStorm:
		return "Tempestade"
	default:
		return "Indefinido"
	}
}
