package automation

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("automation rule not found")

type EventType string

const (
	EventCreditCreated      EventType = "credit_created"
	EventCreditStatusChange EventType = "credit_status_change"
	EventCommentAdded       EventType = "comment_added"
	EventUserRegistered     EventType = "user_registered"
	EventWithdrawalRequested EventType = "withdrawal_requested"
)

// Rule maps an event type to a webhook endpoint, optionally filtered by the
// actor's role and (for status changes) by the destination state name.
type Rule struct {
	ID          uint64    `gorm:"primaryKey" json:"-"`
	RuleID      string    `gorm:"size:32;uniqueIndex" json:"rule_id"`
	Nombre      string    `gorm:"size:191" json:"nombre"`
	Event       EventType `gorm:"size:40;index" json:"event"`
	TargetURL   string    `gorm:"type:text" json:"target_url"`
	RoleFilter  string    `gorm:"size:20" json:"role_filter,omitempty"`
	StateFilter string    `gorm:"size:100" json:"state_filter,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Rule) TableName() string { return "automation_rules" }

// Event is the payload handed to the dispatcher after a mutation commits.
type Event struct {
	Type      EventType      `json:"type"`
	ActorRole string         `json:"actor_role,omitempty"`
	StateName string         `json:"state_name,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	At        time.Time      `json:"at"`
}

// Matches reports whether the rule fires for the event.
func (r *Rule) Matches(ev Event) bool {
	if !r.Active || r.Event != ev.Type {
		return false
	}
	if r.RoleFilter != "" && r.RoleFilter != ev.ActorRole {
		return false
	}
	if ev.Type == EventCreditStatusChange && r.StateFilter != "" && r.StateFilter != ev.StateName {
		return false
	}
	return true
}
