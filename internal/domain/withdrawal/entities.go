package withdrawal

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("withdrawal request not found")
	ErrAlreadyResolved = errors.New("withdrawal request already resolved")
)

type State string

const (
	StatePendiente State = "PENDIENTE"
	StateProcesado State = "PROCESADO"
	StateRechazado State = "RECHAZADO"
)

// Request is a batch of credits whose commission a gestor cashes out.
// Independent of the credit workflow; resolution is terminal.
type Request struct {
	ID          uint64   `gorm:"primaryKey" json:"-"`
	RequestID   string   `gorm:"size:32;uniqueIndex" json:"request_id"`
	GestorID    string   `gorm:"size:32;index" json:"gestor_id"`
	CreditIDs   []string `gorm:"serializer:json;type:text" json:"credit_ids"`
	TotalAmount float64  `gorm:"type:decimal(18,2)" json:"total_amount"`
	State       State    `gorm:"size:20;index;default:'PENDIENTE'" json:"state"`
	ResolvedBy  string   `gorm:"size:32" json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Nota        string     `gorm:"type:text" json:"nota,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "withdrawal_requests" }
