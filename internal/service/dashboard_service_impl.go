package service

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/repository"
)

type LeadStats struct {
	TotalLeads     int            `json:"totalLeads"`
	NewLeads       int            `json:"newLeads"`
	QualifiedLeads int            `json:"qualifiedLeads"`
	ConvertedLeads int            `json:"convertedLeads"`
	ConversionRate float64        `json:"conversionRate"`
	AverageScore   float64        `json:"averageScore"`
	ByStatus       map[string]int `json:"byStatus"`
	BySource       map[string]int `json:"bySource"`
}

// StageSummary counts the opportunities in one pipeline stage.
type StageSummary struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type OpportunityStats struct {
	TotalOpportunities    int                     `json:"totalOpportunities"`
	TotalValue            float64                 `json:"totalValue"`
	AverageDealSize       float64                 `json:"averageDealSize"`
	WinRate               float64                 `json:"winRate"`
	OpenPipelineValue     float64                 `json:"openPipelineValue"`
	WeightedPipelineValue float64                 `json:"weightedPipelineValue"`
	ByStage               map[string]StageSummary `json:"byStage"`
}

type ActivityStats struct {
	TotalActivities     int `json:"totalActivities"`
	CompletedActivities int `json:"completedActivities"`
	OverdueActivities   int `json:"overdueActivities"`
}

// DashboardStats is the CRM dashboard computed over full collections.
type DashboardStats struct {
	Leads         LeadStats        `json:"leads"`
	Opportunities OpportunityStats `json:"opportunities"`
	Activities    ActivityStats    `json:"activities"`
	GeneratedAt   time.Time        `json:"generatedAt"`
}

type dashboardService struct {
	leads         repository.LeadRepo
	opportunities repository.OpportunityRepo
	activities    repository.ActivityRepo
	now           func() time.Time
}

func NewDashboardService(leads repository.LeadRepo, opportunities repository.OpportunityRepo, activities repository.ActivityRepo, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{leads: leads, opportunities: opportunities, activities: activities, now: now}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	opps, err := s.opportunities.List(ctx)
	if err != nil {
		return nil, err
	}
	acts, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := Aggregate(leads, opps, acts, s.now().UTC())
	return &stats, nil
}

// Aggregate computes dashboard metrics. It does not touch storage.
func Aggregate(leads []*domain.Lead, opps []*domain.Opportunity, acts []*domain.Activity, now time.Time) DashboardStats {
	return DashboardStats{
		Leads:         aggregateLeads(leads, now),
		Opportunities: aggregateOpportunities(opps),
		Activities:    aggregateActivities(acts, now),
		GeneratedAt:   now,
	}
}

func aggregateLeads(leads []*domain.Lead, now time.Time) LeadStats {
	st := LeadStats{
		TotalLeads: len(leads),
		ByStatus:   map[string]int{},
		BySource:   map[string]int{},
	}
	year, month, _ := now.Date()
	scoreSum := 0
	for _, l := range leads {
		created := l.CreatedAt.In(now.Location())
		if created.Year() == year && created.Month() == month {
			st.NewLeads++
		}
		switch l.Status {
		case domain.LeadQualified:
			st.QualifiedLeads++
		case domain.LeadConverted:
			st.ConvertedLeads++
		}
		st.ByStatus[string(l.Status)]++
		st.BySource[string(l.Source)]++
		scoreSum += l.Score
	}
	st.ConversionRate = percent(st.ConvertedLeads, st.TotalLeads)
	if st.TotalLeads > 0 {
		st.AverageScore = round2(float64(scoreSum) / float64(st.TotalLeads))
	}
	return st
}

func aggregateOpportunities(opps []*domain.Opportunity) OpportunityStats {
	st := OpportunityStats{
		TotalOpportunities: len(opps),
		ByStage:            map[string]StageSummary{},
	}
	won := 0
	for _, o := range opps {
		st.TotalValue += o.Amount
		if o.Stage == domain.StageClosedWon {
			won++
		}
		if !o.Stage.IsClosed() {
			st.OpenPipelineValue += o.Amount
			st.WeightedPipelineValue += o.WeightedAmount()
		}
		sum := st.ByStage[string(o.Stage)]
		sum.Count++
		sum.Value += o.Amount
		st.ByStage[string(o.Stage)] = sum
	}
	if st.TotalOpportunities > 0 {
		st.AverageDealSize = round2(st.TotalValue / float64(st.TotalOpportunities))
	}
	st.WinRate = percent(won, st.TotalOpportunities)
	st.TotalValue = round2(st.TotalValue)
	st.OpenPipelineValue = round2(st.OpenPipelineValue)
	st.WeightedPipelineValue = round2(st.WeightedPipelineValue)
	for k, sum := range st.ByStage {
		sum.Value = round2(sum.Value)
		st.ByStage[k] = sum
	}
	return st
}

func aggregateActivities(acts []*domain.Activity, now time.Time) ActivityStats {
	st := ActivityStats{TotalActivities: len(acts)}
	for _, a := range acts {
		if a.Status == domain.ActivityCompleted {
			st.CompletedActivities++
		}
		if a.IsOverdue(now) {
			st.OverdueActivities++
		}
	}
	return st
}

// percent returns part/whole*100 rounded to 2 decimals, or 0 for an empty whole.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
