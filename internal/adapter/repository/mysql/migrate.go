package mysql

import (
	automationDomain "creditos-backoffice/internal/domain/automation"
	creditDomain "creditos-backoffice/internal/domain/credit"
	newsDomain "creditos-backoffice/internal/domain/news"
	userDomain "creditos-backoffice/internal/domain/user"
	withdrawalDomain "creditos-backoffice/internal/domain/withdrawal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the schema and seeds the workflow states.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&creditDomain.CreditState{},
		&creditDomain.StateAction{},
		&creditDomain.Credit{},
		&creditDomain.DevolucionTask{},
		&creditDomain.Comment{},
		&creditDomain.Document{},
		&creditDomain.HistoryEntry{},
		&userDomain.User{},
		&withdrawalDomain.Request{},
		&automationDomain.Rule{},
		&newsDomain.Item{},
	); err != nil {
		return err
	}
	if err := seedStates(db); err != nil {
		return err
	}
	return seedStateActions(db)
}

func seedStates(db *gorm.DB) error {
	states := []creditDomain.CreditState{
		{ID: creditDomain.StateRadicado, Nombre: "RADICADO", Color: "#8E8E93", Orden: 1, ResponsibleRole: "GESTOR"},
		{ID: creditDomain.StateEnEstudio, Nombre: "EN ESTUDIO", Color: "#007AFF", Orden: 2, ResponsibleRole: "ANALISTA"},
		{ID: creditDomain.StateDevuelto, Nombre: "DEVUELTO", Color: "#FF3B30", Orden: 3, ResponsibleRole: "GESTOR", IsFinal: true, IsReturned: true},
		{ID: creditDomain.StateSubsanado, Nombre: "SUBSANADO", Color: "#FF9500", Orden: 4, ResponsibleRole: "ANALISTA"},
		{ID: creditDomain.StateAplazado, Nombre: "APLAZADO", Color: "#FFCC00", Orden: 5, ResponsibleRole: "GESTOR", IsReturned: true},
		{ID: creditDomain.StateAprobado, Nombre: "APROBADO", Color: "#34C759", Orden: 6, ResponsibleRole: "ANALISTA"},
		{ID: creditDomain.StatePendienteFirma, Nombre: "PENDIENTE FIRMA", Color: "#5856D6", Orden: 7, ResponsibleRole: "OPERATIVO"},
		{ID: creditDomain.StatePendienteFirmaElec, Nombre: "PENDIENTE FIRMA ELECTRONICA", Color: "#AF52DE", Orden: 8, ResponsibleRole: "OPERATIVO"},
		{ID: creditDomain.StateDesembolsado, Nombre: "DESEMBOLSADO", Color: "#30B0C7", Orden: 9, ResponsibleRole: "OPERATIVO", IsFinal: true},
	}
	// upsert so redeploys pick up color/order tweaks without duplicating rows
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre", "color", "orden", "responsible_role", "is_final", "is_returned"}),
	}).Create(&states).Error
}

func seedStateActions(db *gorm.DB) error {
	var n int64
	if err := db.Model(&creditDomain.StateAction{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	next := func(id string) *string { return &id }
	actions := []creditDomain.StateAction{
		{StateID: creditDomain.StateRadicado, Label: "Pasar a estudio", HistoryAction: "INICIO ESTUDIO", NextStateID: next(creditDomain.StateEnEstudio)},
		{StateID: creditDomain.StateEnEstudio, Label: "Aprobar", HistoryAction: "APROBACION", NextStateID: next(creditDomain.StateAprobado)},
		{StateID: creditDomain.StateSubsanado, Label: "Aprobar", HistoryAction: "APROBACION", NextStateID: next(creditDomain.StateAprobado)},
		{StateID: creditDomain.StateAprobado, Label: "Enviar a firma", HistoryAction: "ENVIO FIRMA", NextStateID: next(creditDomain.StatePendienteFirma)},
		{StateID: creditDomain.StatePendienteFirma, Label: "Firma electronica", HistoryAction: "ENVIO FIRMA ELECTRONICA", NextStateID: next(creditDomain.StatePendienteFirmaElec)},
		{StateID: creditDomain.StatePendienteFirmaElec, Label: "Desembolsar", HistoryAction: "DESEMBOLSO", NextStateID: next(creditDomain.StateDesembolsado)},
		{StateID: creditDomain.StateDesembolsado, Label: "Verificar desembolso", HistoryAction: "VERIFICACION DESEMBOLSO"},
	}
	return db.Create(&actions).Error
}
