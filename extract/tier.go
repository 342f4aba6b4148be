package extract

// Tier describes one PPV product variant. The pipeline iterates over
// tier descriptors, so adding a variant is a table change, not new code.
type Tier struct {
	Name     string
	SourceID int    // fixed category identifier in the billing export
	GridZone string // data-grid-under value on the grid listing page

	// Operator-supplied targets. A blank BillingID deactivates the
	// tier at every stage.
	BillingID string
	Price     float64
	HasPrice  bool
}

// Active reports whether the tier was given a target billing id.
func (t Tier) Active() bool {
	return t.BillingID != ""
}

// TierTable returns the fixed set of tiers: high definition, standard
// definition and the alternate-language feed.
func TierTable() []Tier {
	return []Tier{
		{Name: "HD", SourceID: 13503, GridZone: "grid-under-504"},
		{Name: "SD", SourceID: 12162, GridZone: "grid-under-501"},
		{Name: "ES", SourceID: 15006, GridZone: "grid-under-502"},
	}
}
