package scoring

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/domain"
)

const (
	MinScore = 0
	MaxScore = 100
)

type Input struct {
	Source        domain.LeadSource
	Budget        float64
	Timeline      domain.Timeline
	DecisionMaker bool
	Company       string
}

type FactorCode string

const (
	FactorSource        FactorCode = "SOURCE"
	FactorBudget        FactorCode = "BUDGET"
	FactorTimeline      FactorCode = "TIMELINE"
	FactorDecisionMaker FactorCode = "DECISION_MAKER"
	FactorCompany       FactorCode = "COMPANY"
)

// Factor is one contribution to a lead's score.
type Factor struct {
	Code    FactorCode `json:"code"`
	Message string     `json:"message"`
	Points  int        `json:"points"`
}

type Result struct {
	Raw     int               `json:"raw"`
	Score   int               `json:"score"`
	Rating  domain.LeadRating `json:"rating"`
	Factors []Factor          `json:"factors"`
}

// InputFromLead extracts the scoring inputs from a lead.
func InputFromLead(l *domain.Lead) Input {
	return Input{
		Source:        l.Source,
		Budget:        l.Budget,
		Timeline:      l.Timeline,
		DecisionMaker: l.DecisionMaker,
		Company:       l.Company,
	}
}

// Score returns the clamped 0-100 score for input.
func Score(input Input) int {
	return Explain(input).Score
}

// Explain scores input and returns the per-factor breakdown. Factors that
// contribute nothing are omitted.
func Explain(input Input) Result {
	var res Result
	factors := []func(Input) (int, *Factor){
		scoreSource,
		scoreBudget,
		scoreTimeline,
		scoreDecisionMaker,
		scoreCompany,
	}
	for _, f := range factors {
		pts, factor := f(input)
		res.Raw += pts
		if factor != nil {
			res.Factors = append(res.Factors, *factor)
		}
	}
	res.Score = clamp(res.Raw)
	res.Rating = domain.RatingForScore(res.Score)
	return res
}

func clamp(v int) int {
	// Every factor is non-negative, so the lower bound never triggers.
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

var sourcePoints = map[domain.LeadSource]int{
	domain.SourceReferral:       25,
	domain.SourceRepeatCustomer: 30,
	domain.SourceWebsite:        20,
	domain.SourceGoogleAds:      15,
	domain.SourceSocialMedia:    10,
	domain.SourceColdCall:       5,
}

const otherSourcePoints = 10

func scoreSource(input Input) (int, *Factor) {
	pts, ok := sourcePoints[input.Source]
	if !ok {
		pts = otherSourcePoints
	}
	return pts, &Factor{
		Code:    FactorSource,
		Message: fmt.Sprintf("Source %s", sourceLabel(input.Source)),
		Points:  pts,
	}
}

func sourceLabel(s domain.LeadSource) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

func scoreBudget(input Input) (int, *Factor) {
	var pts int
	switch {
	case input.Budget > 100_000:
		pts = 25
	case input.Budget > 50_000:
		pts = 15
	case input.Budget > 20_000:
		pts = 10
	default:
		return 0, nil
	}
	return pts, &Factor{
		Code:    FactorBudget,
		Message: fmt.Sprintf("Budget %.0f", input.Budget),
		Points:  pts,
	}
}

var timelinePoints = map[domain.Timeline]int{
	domain.TimelineImmediate: 25,
	domain.TimelineOneMonth:  20,
	domain.TimelineThreeMo:   15,
	domain.TimelineSixMo:     10,
	domain.TimelineOneYear:   5,
}

func scoreTimeline(input Input) (int, *Factor) {
	pts, ok := timelinePoints[input.Timeline]
	if !ok {
		return 0, nil
	}
	return pts, &Factor{
		Code:    FactorTimeline,
		Message: fmt.Sprintf("Timeline %s", input.Timeline),
		Points:  pts,
	}
}

func scoreDecisionMaker(input Input) (int, *Factor) {
	if !input.DecisionMaker {
		return 0, nil
	}
	return 20, &Factor{Code: FactorDecisionMaker, Message: "Talking to the decision maker", Points: 20}
}

func scoreCompany(input Input) (int, *Factor) {
	if strings.TrimSpace(input.Company) == "" {
		return 0, nil
	}
	return 10, &Factor{Code: FactorCompany, Message: "Company provided", Points: 10}
}
