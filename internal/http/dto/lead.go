package dto

import (
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/scoring"
)

// ScoreLeadRequest previews a score without storing a lead.
type ScoreLeadRequest struct {
	Source        domain.LeadSource `json:"source"`
	Budget        float64           `json:"budget" binding:"gte=0"`
	Timeline      domain.Timeline   `json:"timeline"`
	DecisionMaker bool              `json:"decisionMaker"`
	Company       string            `json:"company"`
}

func (r ScoreLeadRequest) ToInput() scoring.Input {
	return scoring.Input{
		Source:        r.Source,
		Budget:        r.Budget,
		Timeline:      r.Timeline,
		DecisionMaker: r.DecisionMaker,
		Company:       r.Company,
	}
}

type ActivityStatusRequest struct {
	Status domain.ActivityStatus `json:"status" binding:"required"`
}
