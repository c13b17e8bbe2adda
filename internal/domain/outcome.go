package domain

import (
	"fmt"
	"math"
)

// probSumTolerance es la tolerancia de punto flotante al validar que una
// distribución de outcomes sume 1.0.
const probSumTolerance = 1e-6

// Outcome es un resultado discreto de una acción de modificación (p.ej.
// corromper una gema): su probabilidad y el precio de mercado del ítem
// resultante.
type Outcome struct {
	Label       string
	Probability float64
	Chaos       float64
}

// OutcomeDistribution es la distribución completa de outcomes de una acción.
type OutcomeDistribution []Outcome

// Validate comprueba que las probabilidades sean no negativas y sumen 1.0
// dentro de la tolerancia. Una distribución mal especificada descarta al
// candidato, nunca produce un resultado engañoso.
func (d OutcomeDistribution) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("outcome distribution: empty")
	}
	sum := 0.0
	for _, o := range d {
		if o.Probability < 0 {
			return fmt.Errorf("outcome distribution: negative probability %v for %q", o.Probability, o.Label)
		}
		sum += o.Probability
	}
	if math.Abs(sum-1.0) > probSumTolerance {
		return fmt.Errorf("outcome distribution: probabilities sum to %v, want 1.0", sum)
	}
	return nil
}

// ExpectedValue devuelve Σ p_i × price_i.
func (d OutcomeDistribution) ExpectedValue() float64 {
	ev := 0.0
	for _, o := range d {
		ev += o.Probability * o.Chaos
	}
	return ev
}

// StdDev devuelve sqrt(Σ p_i × (price_i - EV)²), la desviación estándar del
// valor del ítem resultante.
func (d OutcomeDistribution) StdDev() float64 {
	ev := d.ExpectedValue()
	variance := 0.0
	for _, o := range d {
		diff := o.Chaos - ev
		variance += o.Probability * diff * diff
	}
	return math.Sqrt(variance)
}
