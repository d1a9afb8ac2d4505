package valuation

// Tuning holds the heuristic weights of the valuation model. The defaults are the
// values the model was calibrated with; they can be overridden from the config file.
type Tuning struct {
	// Players with projections for only some categories are scaled by
	// CoverageFloor + (1-CoverageFloor)*coverage.
	CoverageFloor float64 `yaml:"coverage_floor"`
	ADPWeight     float64 `yaml:"adp_weight"`

	PriceExponent float64 `yaml:"price_exponent"`
	TopCapShare   float64 `yaml:"top_cap_share"`
	TopCapMin     int     `yaml:"top_cap_min"`
	TopCapMax     int     `yaml:"top_cap_max"`

	CountWeight       float64 `yaml:"count_weight"`
	QualityWeight     float64 `yaml:"quality_weight"`
	Dampening         float64 `yaml:"dampening"`
	ShortageWeight    float64 `yaml:"shortage_weight"`
	ThinSupplyStep    float64 `yaml:"thin_supply_step"`
	FactorMin         float64 `yaml:"factor_min"`
	FactorMax         float64 `yaml:"factor_max"`
	EliteWindow       int     `yaml:"elite_window"`
	ReplacementWindow int     `yaml:"replacement_window"`
}

func DefaultTuning() Tuning {
	return Tuning{
		CoverageFloor: 0.7,
		ADPWeight:     0.45,

		PriceExponent: 1.3,
		TopCapShare:   0.24,
		TopCapMin:     35,
		TopCapMax:     75,

		CountWeight:       0.62,
		QualityWeight:     0.38,
		Dampening:         0.26,
		ShortageWeight:    0.35,
		ThinSupplyStep:    0.08,
		FactorMin:         0.78,
		FactorMax:         1.65,
		EliteWindow:       5,
		ReplacementWindow: 4,
	}
}

// TopCap is the most a single player can be valued at in a league with the given
// per-team budget.
func (t Tuning) TopCap(totalBudget int) int {
	if totalBudget <= 0 {
		totalBudget = 260
	}
	topCap := int(roundHalfUp(float64(totalBudget) * t.TopCapShare))
	return min(max(topCap, t.TopCapMin), t.TopCapMax)
}
