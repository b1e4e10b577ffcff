package models

// ValuationInput represents the inputs of a single implied P/E evaluation
type ValuationInput struct {
	Ticker      string  `json:"ticker,omitempty" yaml:"ticker"`
	Price       float64 `json:"price" yaml:"price" validate:"required,nonzero,finite"`
	EPS         float64 `json:"eps" yaml:"eps" validate:"required,nonzero,finite"`
	GrowthRate  float64 `json:"growth_rate" yaml:"growth_rate" validate:"finite"`
	PayoutRatio float64 `json:"payout_ratio" yaml:"payout_ratio" validate:"finite,gte=0,lte=1"`
}

// ForwardEPS returns EPS grown by one period at the expected growth rate
func (in ValuationInput) ForwardEPS() float64 {
	return in.EPS * (1 + in.GrowthRate)
}

// RetentionRatio returns the share of earnings kept in the business
func (in ValuationInput) RetentionRatio() float64 {
	return 1 - in.PayoutRatio
}

// Peer represents one comparable company of a peer set
type Peer struct {
	ID         string  `json:"id" validate:"required"`
	Price      float64 `json:"price" validate:"required,nonzero,finite"`
	EPS        float64 `json:"eps" validate:"required,nonzero,finite"`
	GrowthRate float64 `json:"growth_rate" validate:"finite"`
}

// PeerSet is an ordered collection of peers keyed by unique identifier
type PeerSet []Peer

// IDs returns the peer identifiers in input order
func (ps PeerSet) IDs() []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

// Index maps each identifier to its position. When an identifier repeats,
// the first position wins.
func (ps PeerSet) Index() map[string]int {
	index := make(map[string]int, len(ps))
	for i, p := range ps {
		if _, exists := index[p.ID]; !exists {
			index[p.ID] = i
		}
	}
	return index
}

// PeerMultiple is the implied forward P/E computed for one peer
type PeerMultiple struct {
	ID        string  `json:"id"`
	ImpliedPE float64 `json:"implied_pe"`
}

// IndustryPE represents the result of a peer comparison
type IndustryPE struct {
	Individual []PeerMultiple `json:"individual_multiples"`
	Median     float64        `json:"median_pe"`
}

// Get returns the multiple computed for the given peer
func (r *IndustryPE) Get(id string) (float64, bool) {
	for _, m := range r.Individual {
		if m.ID == id {
			return m.ImpliedPE, true
		}
	}
	return 0, false
}

// Values returns the individual multiples in input order
func (r *IndustryPE) Values() []float64 {
	values := make([]float64, 0, len(r.Individual))
	for _, m := range r.Individual {
		values = append(values, m.ImpliedPE)
	}
	return values
}

// IndustryStats holds descriptive statistics over a peer comparison
type IndustryStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}
