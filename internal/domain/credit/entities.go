package credit

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("credit not found")
	ErrStateNotConfigured  = errors.New("credit state not configured")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrCommentRequired     = errors.New("a comment explaining the transition is required")
	ErrTasksRequired       = errors.New("a task checklist is required when returning a credit")
	ErrTasksPending        = errors.New("remediation tasks are still pending")
	ErrTaskNotFound        = errors.New("remediation task not found")
	ErrTaskCompleted       = errors.New("task already completed")
	ErrCompletionMismatch  = errors.New("completion payload does not match task requirement")
	ErrSubsanacionDisabled = errors.New("subsanación is not enabled for this credit")
)

// Well-known state ids. States live in the credit_states table; these
// constants name the ones the workflow itself branches on.
const (
	StateRadicado             = "RADICADO"
	StateEnEstudio            = "EN_ESTUDIO"
	StateDevuelto             = "DEVUELTO"
	StateSubsanado            = "SUBSANADO"
	StateAplazado             = "APLAZADO"
	StateAprobado             = "APROBADO"
	StatePendienteFirma       = "PENDIENTE_FIRMA"
	StatePendienteFirmaElec   = "PENDIENTE_FIRMA_ELECTRONICA"
	StateDesembolsado         = "DESEMBOLSADO"
)

// CreditState is a statically seeded row; end users do not edit these.
type CreditState struct {
	ID              string `gorm:"primaryKey;size:40" json:"id"`
	Nombre          string `gorm:"size:100" json:"nombre"`
	Color           string `gorm:"size:20" json:"color"`
	Orden           int    `gorm:"index" json:"orden"`
	ResponsibleRole string `gorm:"size:20" json:"responsible_role"`
	IsFinal         bool   `json:"is_final"`
	// IsReturned marks the DEVUELTO-class states that carry a task checklist.
	IsReturned bool `json:"is_returned"`
}

func (CreditState) TableName() string { return "credit_states" }

// StateAction is a per-state one-click button: appends a history entry and
// optionally chains an automatic transition.
type StateAction struct {
	ID            uint64  `gorm:"primaryKey" json:"id"`
	StateID       string  `gorm:"size:40;index" json:"state_id"`
	Label         string  `gorm:"size:100" json:"label"`
	HistoryAction string  `gorm:"size:100" json:"history_action"`
	NextStateID   *string `gorm:"size:40" json:"next_state_id,omitempty"`
}

func (StateAction) TableName() string { return "credit_state_actions" }

// ProfileVersion is the current ClientProfile schema version. Bump it when
// fields are added or renamed so stored blobs can be migrated on read.
const ProfileVersion = 1

// ClientProfile is the embedded applicant record. Versioned value object
// stored as a JSON column; it has no lifecycle of its own.
type ClientProfile struct {
	Version int `json:"version"`

	NombreCompleto   string `json:"nombre_completo,omitempty"`
	TipoDocumento    string `json:"tipo_documento,omitempty"`
	NumeroDocumento  string `json:"numero_documento,omitempty"`
	FechaNacimiento  string `json:"fecha_nacimiento,omitempty"`
	Telefono         string `json:"telefono,omitempty"`
	Email            string `json:"email,omitempty"`
	Ciudad           string `json:"ciudad,omitempty"`
	DireccionCompleta string `json:"direccion_completa,omitempty"`

	TipoPension      string  `json:"tipo_pension,omitempty"`
	FondoPension     string  `json:"fondo_pension,omitempty"`
	MesadaPensional  float64 `json:"mesada_pensional,omitempty"`
	Banco            string  `json:"banco,omitempty"`
	NumeroCuenta     string  `json:"numero_cuenta,omitempty"`

	ReferenciaNombre    string `json:"referencia_nombre,omitempty"`
	ReferenciaTelefono  string `json:"referencia_telefono,omitempty"`
	BeneficiarioNombre  string `json:"beneficiario_nombre,omitempty"`
	BeneficiarioParentesco string `json:"beneficiario_parentesco,omitempty"`
}

type Credit struct {
	ID               uint64 `gorm:"primaryKey;column:id" json:"-"`
	CreditID         string `gorm:"size:32;uniqueIndex:ux_credits_credit_id_active" json:"credit_id"`
	SolicitudNumber  uint64 `gorm:"uniqueIndex:ux_credits_solicitud_active" json:"solicitud_number"`
	AssignedGestorID string `gorm:"size:32;index:idx_credits_gestor" json:"assigned_gestor_id"`
	AssignedAnalystID string `gorm:"size:32;index" json:"assigned_analyst_id,omitempty"`

	StatusID              string `gorm:"size:40;index" json:"status_id"`
	SubsanacionHabilitada bool   `json:"subsanacion_habilitada"`

	Linea                string  `gorm:"size:100" json:"linea"`
	Monto                float64 `gorm:"type:decimal(18,2)" json:"monto"`
	Plazo                int     `json:"plazo"`
	Tasa                 float64 `gorm:"type:decimal(6,4)" json:"tasa"`
	Cuota                float64 `gorm:"type:decimal(18,2)" json:"cuota"`
	EntidadAliada        string  `gorm:"size:100" json:"entidad_aliada"`
	CommissionPercentage float64 `gorm:"type:decimal(6,4)" json:"commission_percentage"`
	EstimatedCommission  float64 `gorm:"type:decimal(18,2)" json:"estimated_commission"`
	ComisionPagada       bool    `json:"comision_pagada"`
	FechaPagoComision    *time.Time `json:"fecha_pago_comision,omitempty"`

	Cliente ClientProfile `gorm:"serializer:json;type:text" json:"cliente"`

	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy      string         `gorm:"size:32" json:"-"`
}

func (Credit) TableName() string { return "credits" }

// DevolucionTask is one remediation item. Once completed it is immutable;
// the whole set is replaced on the next return transition.
type DevolucionTask struct {
	ID          uint64 `gorm:"primaryKey" json:"-"`
	TaskID      string `gorm:"size:32;uniqueIndex" json:"task_id"`
	CreditRowID uint64 `gorm:"column:credit_row_id;index" json:"-"`
	Title       string `gorm:"size:255" json:"title"`
	RequiresDoc bool   `json:"requires_doc"`
	Completed   bool   `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `gorm:"size:32" json:"completed_by,omitempty"`
	DocURL      string     `gorm:"type:text" json:"doc_url,omitempty"`
	DocName     string     `gorm:"size:255" json:"doc_name,omitempty"`
	CompletionText string  `gorm:"type:text" json:"completion_text,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (DevolucionTask) TableName() string { return "devolucion_tasks" }

// AllTasksDone reports whether the checklist gates nothing: an empty list or
// one where every task is completed.
func AllTasksDone(tasks []DevolucionTask) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

type Comment struct {
	ID          uint64    `gorm:"primaryKey" json:"-"`
	CommentID   string    `gorm:"size:32;uniqueIndex" json:"comment_id"`
	CreditRowID uint64    `gorm:"column:credit_row_id;index" json:"-"`
	AuthorID    string    `gorm:"size:32" json:"author_id"`
	Texto       string    `gorm:"type:text" json:"texto"`
	AttachmentURL string  `gorm:"type:text" json:"attachment_url,omitempty"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Comment) TableName() string { return "credit_comments" }

type Document struct {
	ID          uint64    `gorm:"primaryKey" json:"-"`
	DocumentID  string    `gorm:"size:32;uniqueIndex" json:"document_id"`
	CreditRowID uint64    `gorm:"column:credit_row_id;index" json:"-"`
	Tipo        string    `gorm:"size:100" json:"tipo"`
	Nombre      string    `gorm:"size:255" json:"nombre"`
	URL         string    `gorm:"type:text" json:"url"`
	UploadedBy  string    `gorm:"size:32" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Document) TableName() string { return "credit_documents" }

// HistoryEntry is one audit-trail row: actor, action label, free text.
type HistoryEntry struct {
	ID          uint64    `gorm:"primaryKey" json:"-"`
	EntryID     string    `gorm:"size:32;uniqueIndex" json:"entry_id"`
	CreditRowID uint64    `gorm:"column:credit_row_id;index" json:"-"`
	ActorID     string    `gorm:"size:32" json:"actor_id"`
	ActorName   string    `gorm:"size:191" json:"actor_name"`
	Action      string    `gorm:"size:100" json:"action"`
	Descripcion string    `gorm:"type:text" json:"descripcion"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (HistoryEntry) TableName() string { return "credit_history" }
