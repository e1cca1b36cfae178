package domain

import "fmt"

// leadRank orders the active lead statuses along the sales funnel.
var leadRank = map[LeadStatus]int{
	LeadNew:          0,
	LeadContacted:    1,
	LeadQualified:    2,
	LeadProposalSent: 3,
	LeadNegotiation:  4,
}

// CheckLeadTransition validates a lead status change outside the conversion
// workflow. Forward moves may skip steps; backward moves are only allowed out
// of nurturing. Same-status moves are accepted as no-ops.
func CheckLeadTransition(id string, from, to LeadStatus) error {
	if !ValidLeadStatuses[to] {
		return NewValidationError("invalid lead status", FieldError{Field: "status", Msg: "unknown status " + string(to)})
	}
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return NewStateError(EntityLead, id, fmt.Sprintf("lead is %s; no further status changes are allowed", from))
	}
	switch to {
	case LeadConverted:
		return NewStateError(EntityLead, id, "use lead conversion to mark a lead converted")
	case LeadNurturing, LeadLost:
		return nil
	}
	if from == LeadNurturing {
		return nil
	}
	if leadRank[to] < leadRank[from] {
		return NewStateError(EntityLead, id, fmt.Sprintf("cannot move lead back from %s to %s", from, to))
	}
	return nil
}

// CheckConvertible reports whether a lead can enter the conversion workflow.
func CheckConvertible(l *Lead) error {
	if l.Status.IsTerminal() {
		return NewStateError(EntityLead, l.ID, fmt.Sprintf("lead is already %s", l.Status))
	}
	return nil
}

// CheckStageTransition validates an opportunity stage change: forward only,
// or straight to a closed stage. Closed stages are terminal.
func CheckStageTransition(id string, from, to OpportunityStage) error {
	if to.Rank() < 0 {
		return NewValidationError("invalid stage", FieldError{Field: "stage", Msg: "unknown stage " + string(to)})
	}
	if from == to {
		return nil
	}
	if from.IsClosed() {
		return NewStateError(EntityOpportunity, id, fmt.Sprintf("opportunity is %s; stage is final", from))
	}
	if to.Rank() < from.Rank() {
		return NewStateError(EntityOpportunity, id, fmt.Sprintf("cannot move opportunity back from %s to %s", from, to))
	}
	return nil
}

var activityTransitions = map[ActivityStatus]map[ActivityStatus]bool{
	ActivityScheduled:  {ActivityInProgress: true, ActivityCompleted: true, ActivityCancelled: true},
	ActivityInProgress: {ActivityCompleted: true, ActivityCancelled: true},
	ActivityCompleted:  {},
	ActivityCancelled:  {},
}

func CheckActivityTransition(id string, from, to ActivityStatus) error {
	if !ValidActivityStatuses[to] {
		return NewValidationError("invalid activity status", FieldError{Field: "status", Msg: "unknown status " + string(to)})
	}
	if from == to {
		return nil
	}
	if !activityTransitions[from][to] {
		return NewStateError(EntityActivity, id, fmt.Sprintf("cannot move activity from %s to %s", from, to))
	}
	return nil
}
