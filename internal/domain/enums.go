package domain

type LeadSource string

const (
	SourceWebsite        LeadSource = "website"
	SourceReferral       LeadSource = "referral"
	SourceGoogleAds      LeadSource = "google_ads"
	SourceSocialMedia    LeadSource = "social_media"
	SourceColdCall       LeadSource = "cold_call"
	SourceRepeatCustomer LeadSource = "repeat_customer"
	SourceEmailCampaign  LeadSource = "email_campaign"
	SourceWalkIn         LeadSource = "walk_in"
	SourceOther          LeadSource = "other"
)

// ValidLeadSources is the canonical set of accepted lead source strings.
var ValidLeadSources = map[LeadSource]bool{
	SourceWebsite: true, SourceReferral: true, SourceGoogleAds: true,
	SourceSocialMedia: true, SourceColdCall: true, SourceRepeatCustomer: true,
	SourceEmailCampaign: true, SourceWalkIn: true, SourceOther: true,
}

type LeadStatus string

const (
	LeadNew          LeadStatus = "new"
	LeadContacted    LeadStatus = "contacted"
	LeadQualified    LeadStatus = "qualified"
	LeadProposalSent LeadStatus = "proposal_sent"
	LeadNegotiation  LeadStatus = "negotiation"
	LeadConverted    LeadStatus = "converted"
	LeadLost         LeadStatus = "lost"
	LeadNurturing    LeadStatus = "nurturing"
)

// ValidLeadStatuses is the canonical set of accepted lead status strings.
var ValidLeadStatuses = map[LeadStatus]bool{
	LeadNew: true, LeadContacted: true, LeadQualified: true,
	LeadProposalSent: true, LeadNegotiation: true, LeadConverted: true,
	LeadLost: true, LeadNurturing: true,
}

// IsTerminal reports whether no further status change is possible.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadConverted || s == LeadLost
}

type LeadRating string

const (
	RatingHot  LeadRating = "hot"
	RatingWarm LeadRating = "warm"
	RatingCold LeadRating = "cold"
)

var ValidLeadRatings = map[LeadRating]bool{
	RatingHot: true, RatingWarm: true, RatingCold: true,
}

// RatingForScore maps a 0-100 lead score to a rating band.
func RatingForScore(score int) LeadRating {
	switch {
	case score >= 70:
		return RatingHot
	case score >= 40:
		return RatingWarm
	default:
		return RatingCold
	}
}

type Timeline string

const (
	TimelineImmediate Timeline = "immediate"
	TimelineOneMonth  Timeline = "1_month"
	TimelineThreeMo   Timeline = "3_months"
	TimelineSixMo     Timeline = "6_months"
	TimelineOneYear   Timeline = "1_year"
)

// ValidTimelines lists accepted timeline values. The empty timeline is
// also accepted and means "unknown".
var ValidTimelines = map[Timeline]bool{
	TimelineImmediate: true, TimelineOneMonth: true, TimelineThreeMo: true,
	TimelineSixMo: true, TimelineOneYear: true,
}

type OpportunityStage string

const (
	StageProspecting   OpportunityStage = "prospecting"
	StageQualification OpportunityStage = "qualification"
	StageNeedsAnalysis OpportunityStage = "needs_analysis"
	StageProposal      OpportunityStage = "proposal"
	StageNegotiation   OpportunityStage = "negotiation"
	StageClosedWon     OpportunityStage = "closed_won"
	StageClosedLost    OpportunityStage = "closed_lost"
)

// PipelineStages lists the stages in pipeline order.
var PipelineStages = []OpportunityStage{
	StageProspecting,
	StageQualification,
	StageNeedsAnalysis,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Rank returns the stage's position in the pipeline, or -1 if unknown.
// Both closed stages share the final rank.
func (s OpportunityStage) Rank() int {
	switch s {
	case StageClosedWon, StageClosedLost:
		return 5
	}
	for i, st := range PipelineStages {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OpportunityStage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// DefaultProbability is the close probability assumed for a stage when the
// caller does not supply one.
func (s OpportunityStage) DefaultProbability() int {
	switch s {
	case StageProspecting:
		return 10
	case StageQualification:
		return 25
	case StageNeedsAnalysis:
		return 40
	case StageProposal:
		return 60
	case StageNegotiation:
		return 80
	case StageClosedWon:
		return 100
	default:
		return 0
	}
}

type ActivityType string

const (
	ActivityCall               ActivityType = "call"
	ActivityEmail              ActivityType = "email"
	ActivityMeeting            ActivityType = "meeting"
	ActivityNote               ActivityType = "note"
	ActivityTask               ActivityType = "task"
	ActivityLeadCreated        ActivityType = "lead_created"
	ActivityStatusChange       ActivityType = "status_change"
	ActivityOpportunityCreated ActivityType = "opportunity_created"
	ActivityStageChange        ActivityType = "stage_change"
	ActivityConversion         ActivityType = "conversion"
)

var ValidActivityTypes = map[ActivityType]bool{
	ActivityCall: true, ActivityEmail: true, ActivityMeeting: true,
	ActivityNote: true, ActivityTask: true, ActivityLeadCreated: true,
	ActivityStatusChange: true, ActivityOpportunityCreated: true,
	ActivityStageChange: true, ActivityConversion: true,
}

type ActivityStatus string

const (
	ActivityScheduled  ActivityStatus = "scheduled"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityCancelled  ActivityStatus = "cancelled"
)

var ValidActivityStatuses = map[ActivityStatus]bool{
	ActivityScheduled: true, ActivityInProgress: true,
	ActivityCompleted: true, ActivityCancelled: true,
}

type EntityType string

const (
	EntityLead        EntityType = "lead"
	EntityOpportunity EntityType = "opportunity"
	EntityActivity    EntityType = "activity"
)
