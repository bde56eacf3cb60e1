package servicecase

// Stage patches make the single-writer-per-field invariant explicit: every
// stage returns exactly one patch type whose fields are a statically known
// subset of the case record. Only the orchestrator's reducer applies them.

// TriagePatch is the triage stage's partial update.
type TriagePatch struct {
	Decision TriageDecision
}

// EnrichmentPatch is the enrichment stage's partial update.
type EnrichmentPatch struct {
	Outputs EnrichmentOutputs
}

// TechnicalPatch is the technical analysis stage's partial update.
type TechnicalPatch struct {
	Outputs TechnicalOutputs
}

// EconomicPatch is the economic analysis stage's partial update.
type EconomicPatch struct {
	Outputs EconomicOutputs
}

// FinalPatch is the recommendation synthesis stage's partial update, also
// used by the terminal routes.
type FinalPatch struct {
	Outputs FinalOutputs
}

// ApplyTriage merges a triage patch into a copy of the record.
func (r CaseRecord) ApplyTriage(p TriagePatch) CaseRecord {
	d := p.Decision
	r.Triage = &d
	return r
}

// ApplyEnrichment merges an enrichment patch into a copy of the record.
func (r CaseRecord) ApplyEnrichment(p EnrichmentPatch) CaseRecord {
	o := p.Outputs
	r.Enrichment = &o
	return r
}

// ApplyTechnical merges a technical patch into a copy of the record.
func (r CaseRecord) ApplyTechnical(p TechnicalPatch) CaseRecord {
	o := p.Outputs
	r.Technical = &o
	return r
}

// ApplyEconomic merges an economic patch into a copy of the record.
func (r CaseRecord) ApplyEconomic(p EconomicPatch) CaseRecord {
	o := p.Outputs
	r.Economic = &o
	return r
}

// ApplyFinal merges a final patch into a copy of the record.
func (r CaseRecord) ApplyFinal(p FinalPatch) CaseRecord {
	o := p.Outputs
	r.Final = &o
	return r
}
