package domain

import "time"

// LifecycleEvent records one status or stage change of a lead or opportunity.
type LifecycleEvent struct {
	ID         string     `json:"id"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	ChangedBy  string     `json:"changedBy"`
	ChangedAt  time.Time  `json:"changedAt"`
	Reason     string     `json:"reason,omitempty"`
}
