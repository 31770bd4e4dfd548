package models

import "time"

// OpportunityStage is a step of the sales pipeline.
type OpportunityStage string

const (
	StageProspect      OpportunityStage = "PROSPECT"
	StageQualification OpportunityStage = "QUALIFICATION"
	StageProposal      OpportunityStage = "PROPOSAL"
	StageNegotiation   OpportunityStage = "NEGOTIATION"
	StageClosedWon     OpportunityStage = "CLOSED_WON"
	StageClosedLost    OpportunityStage = "CLOSED_LOST"
)

// PipelineStages lists stages in pipeline order.
var PipelineStages = []OpportunityStage{StageProspect, StageQualification, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost}

var stageTransitions = transitions[OpportunityStage]{
	StageProspect:      {StageQualification, StageClosedLost},
	StageQualification: {StageProposal, StageClosedLost},
	StageProposal:      {StageNegotiation, StageClosedLost},
	StageNegotiation:   {StageClosedWon, StageClosedLost},
	StageClosedWon:     {},
	StageClosedLost:    {},
}

// Valid reports whether s is a known stage.
func (s OpportunityStage) Valid() bool { return stageTransitions.known(s) }

// Closed reports whether s is terminal.
func (s OpportunityStage) Closed() bool { return s == StageClosedWon || s == StageClosedLost }

// CanTransitionTo reports whether an opportunity may move from s to next.
func (s OpportunityStage) CanTransitionTo(next OpportunityStage) bool {
	return stageTransitions.allows(s, next)
}

// Opportunity is a potential sale tracked in the CRM.
type Opportunity struct {
	ID                int64            `db:"id" json:"id"`
	LeadID            *int64           `db:"lead_id" json:"leadId,omitempty"`
	Title             string           `db:"title" json:"title"`
	Value             float64          `db:"value" json:"value"`
	Stage             OpportunityStage `db:"stage" json:"stage"`
	ExpectedCloseDate *time.Time       `db:"expected_close_date" json:"expectedCloseDate,omitempty"`
	Notes             *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updatedAt"`
}

// OpportunityFilter captures list filters for opportunities.
type OpportunityFilter struct {
	PageRequest
	Stage  *OpportunityStage
	LeadID *int64
}

// OpportunityRequest is the create and update payload for opportunities.
type OpportunityRequest struct {
	LeadID            *int64     `json:"leadId,omitempty" validate:"omitempty,gt=0"`
	Title             string     `json:"title" validate:"required,notblank,max=200"`
	Value             float64    `json:"value" validate:"gte=0"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	Notes             *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// OpportunityStageRequest moves an opportunity to a new stage.
type OpportunityStageRequest struct {
	Stage OpportunityStage `json:"stage" validate:"required,oneof=PROSPECT QUALIFICATION PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
}

// PipelineStageTotal is the count and value of opportunities in one stage.
type PipelineStageTotal struct {
	Stage OpportunityStage `db:"stage" json:"stage"`
	Count int              `db:"count" json:"count"`
	Value float64          `db:"value" json:"value"`
}

// PipelineSummary aggregates the sales pipeline.
type PipelineSummary struct {
	Stages      []PipelineStageTotal `json:"stages"`
	OpenValue   float64              `json:"openValue"`
	WonValue    float64              `json:"wonValue"`
	WinRate     float64              `json:"winRate"`
	TotalOpen   int                  `json:"totalOpen"`
	TotalClosed int                  `json:"totalClosed"`
}
