package domain

import (
	"fmt"
	"math"
)

// RiskProfile clasifica la volatilidad del profit de una estrategia.
// El orden es significativo: Low < Medium < High < Extreme. Investment queda
// fuera de la escala — inversiones de un solo paso sin ciclo repetible.
type RiskProfile int

const (
	RiskLow RiskProfile = iota
	RiskMedium
	RiskHigh
	RiskExtreme
	RiskInvestment
)

func (r RiskProfile) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskExtreme:
		return "Extreme"
	case RiskInvestment:
		return "Investment"
	default:
		return "Unknown"
	}
}

// RiskProfileFromString es la inversa de String; se usa al leer filas persistidas.
func RiskProfileFromString(s string) (RiskProfile, bool) {
	switch s {
	case "Low":
		return RiskLow, true
	case "Medium":
		return RiskMedium, true
	case "High":
		return RiskHigh, true
	case "Extreme":
		return RiskExtreme, true
	case "Investment":
		return RiskInvestment, true
	}
	return RiskLow, false
}

// RiskThresholds es la tabla ascendente de umbrales de stddev que delimitan
// cada bucket de riesgo. Un stddev <= Low clasifica como Low (límite inclusivo
// por abajo), <= Medium como Medium, etc. Por encima de Extreme sigue siendo
// Extreme.
type RiskThresholds struct {
	Low     float64 `yaml:"low"`
	Medium  float64 `yaml:"medium"`
	High    float64 `yaml:"high"`
	Extreme float64 `yaml:"extreme"`
}

// Validate comprueba que los umbrales sean estrictamente ascendentes y no
// negativos. Una tabla mal especificada es un error de configuración, no un
// estado recuperable en runtime.
func (t RiskThresholds) Validate() error {
	if t.Low < 0 {
		return fmt.Errorf("risk thresholds: Low must be >= 0, got %v", t.Low)
	}
	if !(t.Low < t.Medium && t.Medium < t.High && t.High < t.Extreme) {
		return fmt.Errorf("risk thresholds must be strictly ascending: Low=%v Medium=%v High=%v Extreme=%v",
			t.Low, t.Medium, t.High, t.Extreme)
	}
	return nil
}

// Classify asigna el bucket de riesgo para un stddev de profit: el umbral más
// bajo cuyo valor es >= stddev decide. Un stddev NaN o negativo se trata como
// sin volatilidad medible y cae en Low.
func (t RiskThresholds) Classify(stdDev float64) RiskProfile {
	if math.IsNaN(stdDev) || stdDev < 0 {
		stdDev = 0
	}
	switch {
	case stdDev <= t.Low:
		return RiskLow
	case stdDev <= t.Medium:
		return RiskMedium
	case stdDev <= t.High:
		return RiskHigh
	default:
		return RiskExtreme
	}
}
