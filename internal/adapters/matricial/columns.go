package matricial

// Range is a half-open horizontal pixel band, inclusive on both ends
// to match the report generator's rounding.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether x falls inside the band.
func (r Range) Contains(x int) bool {
	return x >= r.Min && x <= r.Max
}

// Columns maps each report column to its pixel band. The defaults fit
// the stock report layout; custom layouts override them in config.
type Columns struct {
	Client      Range `yaml:"client"`
	Document    Range `yaml:"document"`
	Value       Range `yaml:"value"`
	PayDate     Range `yaml:"pay_date"`
	Type        Range `yaml:"type"`
	Salesperson Range `yaml:"salesperson"`
	Invoice     Range `yaml:"invoice"`
}

// DefaultColumns returns the stock report layout.
func DefaultColumns() Columns {
	return Columns{
		Client:      Range{70, 140},
		Document:    Range{140, 200},
		Value:       Range{200, 260},
		PayDate:     Range{480, 530},
		Type:        Range{530, 600},
		Salesperson: Range{600, 700},
		Invoice:     Range{720, 760},
	}
}

// IsZero reports whether no band was configured at all.
func (c Columns) IsZero() bool {
	return c == Columns{}
}
