package domain

import (
	"strings"
	"time"
)

type Opportunity struct {
	ID                string           `json:"id"`
	OpportunityNumber string           `json:"opportunityNumber"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	LeadID            string           `json:"leadId,omitempty"`
	Stage             OpportunityStage `json:"stage"`
	Probability       int              `json:"probability"`
	Amount            float64          `json:"amount"`
	ExpectedCloseDate *time.Time       `json:"expectedCloseDate,omitempty"`
	ActualCloseDate   *time.Time       `json:"actualCloseDate,omitempty"`
	Owner             string           `json:"owner,omitempty"`
	CreatedBy         string           `json:"createdBy"`
	UpdatedBy         string           `json:"updatedBy"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	Version           int              `json:"version"`
}

func (o *Opportunity) DisplayID() string {
	if o.OpportunityNumber != "" {
		return o.OpportunityNumber
	}
	return o.ID
}

// WeightedAmount is the amount scaled by close probability.
func (o *Opportunity) WeightedAmount() float64 {
	return o.Amount * float64(o.Probability) / 100
}

// ApplyDefaults starts an empty stage at prospecting. A zero probability
// takes the stage default.
func (o *Opportunity) ApplyDefaults() {
	if o.Stage == "" {
		o.Stage = StageProspecting
	}
	if o.Probability == 0 {
		o.Probability = o.Stage.DefaultProbability()
	}
}

func (o *Opportunity) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(o.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Msg: "is required"})
	}
	if o.Stage.Rank() < 0 {
		fields = append(fields, FieldError{Field: "stage", Msg: "invalid stage " + string(o.Stage)})
	}
	if fe, ok := checkPercent("probability", o.Probability); !ok {
		fields = append(fields, fe)
	}
	if o.Amount < 0 {
		fields = append(fields, FieldError{Field: "amount", Msg: "must be >= 0"})
	}
	if len(fields) > 0 {
		return NewValidationError("invalid opportunity", fields...)
	}
	return nil
}

// OpportunityPatch is a partial update; stage changes go through
// CanMoveStage before being applied.
type OpportunityPatch struct {
	Name              *string           `json:"name,omitempty"`
	Description       *string           `json:"description,omitempty"`
	Stage             *OpportunityStage `json:"stage,omitempty"`
	Probability       *int              `json:"probability,omitempty"`
	Amount            *float64          `json:"amount,omitempty"`
	ExpectedCloseDate *time.Time        `json:"expectedCloseDate,omitempty"`
	Owner             *string           `json:"owner,omitempty"`
	Version           *int              `json:"version,omitempty"`
}

// ApplyTo merges every field except Stage onto o.
func (p OpportunityPatch) ApplyTo(o *Opportunity) {
	o.Name = FromPtrWithDefault(o.Name, p.Name)
	o.Description = FromPtrWithDefault(o.Description, p.Description)
	o.Probability = FromPtrWithDefault(o.Probability, p.Probability)
	o.Amount = Float64FromPtrWithDefault(o.Amount, p.Amount)
	o.Owner = FromPtrWithDefault(o.Owner, p.Owner)
	if p.ExpectedCloseDate != nil {
		o.ExpectedCloseDate = p.ExpectedCloseDate
	}
}

// SetStage moves o to stage, applying the stage's default probability when
// none is given and stamping the close date for closed stages.
func (o *Opportunity) SetStage(stage OpportunityStage, probability *int, now time.Time) {
	o.Stage = stage
	o.Probability = FromPtrWithDefault(stage.DefaultProbability(), probability)
	if stage.IsClosed() {
		o.ActualCloseDate = &now
	}
}

// ConversionOverrides customise the opportunity produced from a lead.
type ConversionOverrides struct {
	Amount            *float64   `json:"amount,omitempty"`
	Name              string     `json:"name,omitempty"`
	Owner             string     `json:"owner,omitempty"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
}

// ConversionName is the default name of an opportunity converted from l.
func ConversionName(l *Lead) string {
	return l.FullName() + " – " + CoalesceStr(l.Company, "Move")
}
