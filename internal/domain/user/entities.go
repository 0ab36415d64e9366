package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleGestor    Role = "GESTOR"
	RoleAnalista  Role = "ANALISTA"
	RoleOperativo Role = "OPERATIVO"
)

type Permission string

const (
	PermCreateCredit        Permission = "CREATE_CREDIT"
	PermViewOwnCredits      Permission = "VIEW_OWN_CREDITS"
	PermViewAllCredits      Permission = "VIEW_ALL_CREDITS"
	PermEditCreditInfo      Permission = "EDIT_CREDIT_INFO"
	PermDeleteCredit        Permission = "DELETE_CREDIT"
	PermChangeCreditStatus  Permission = "CHANGE_CREDIT_STATUS"
	PermToggleSubsanacion   Permission = "TOGGLE_SUBSANACION"
	PermAssignAnalystManual Permission = "ASSIGN_ANALYST_MANUAL"
	PermMarkCommissionPaid  Permission = "MARK_COMMISSION_PAID"
	PermAddComment          Permission = "ADD_COMMENT"
	PermUploadDocument      Permission = "UPLOAD_DOCUMENT"
	PermRequestWithdrawal   Permission = "REQUEST_WITHDRAWAL"
	PermProcessWithdrawals  Permission = "PROCESS_WITHDRAWALS"
	PermManageUsers         Permission = "MANAGE_USERS"
	PermManageStates        Permission = "MANAGE_STATES"
	PermManageAutomations   Permission = "MANAGE_AUTOMATIONS"
	PermManageNews          Permission = "MANAGE_NEWS"
	PermViewReports         Permission = "VIEW_REPORTS"
	PermExportData          Permission = "EXPORT_DATA"
)

// RoleDefaults is the static role → permissions table. ADMIN is the superuser
// role and is special-cased by the evaluator, not listed here.
var RoleDefaults = map[Role][]Permission{
	RoleGestor: {
		PermCreateCredit, PermViewOwnCredits, PermAddComment,
		PermUploadDocument, PermRequestWithdrawal,
	},
	RoleAnalista: {
		PermViewAllCredits, PermChangeCreditStatus, PermToggleSubsanacion,
		PermEditCreditInfo, PermAssignAnalystManual, PermAddComment,
		PermUploadDocument,
	},
	RoleOperativo: {
		PermViewAllCredits, PermAddComment, PermMarkCommissionPaid,
		PermProcessWithdrawals, PermViewReports, PermExportData,
	},
}

type User struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID       string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Email        string         `gorm:"size:191;uniqueIndex:ux_users_email_active" json:"email"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	Nombre       string         `gorm:"size:191" json:"nombre"`
	Role         Role           `gorm:"size:20;index" json:"role"`
	Zona         string         `gorm:"size:100" json:"zona"`
	// Permissions, when non-empty, overrides RoleDefaults verbatim.
	Permissions []Permission `gorm:"serializer:json;type:text" json:"permissions,omitempty"`
	Activo      bool         `gorm:"default:true" json:"activo"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
