package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
)

type tabler interface {
	TableName() string
}

// schemaModels lists the tables the service reads and writes
func schemaModels() []tabler {
	return []tabler{
		&models.ProfileModel{},
		&models.OrderModel{},
		&models.PaymentModel{},
		&models.StockItemModel{},
		&models.UserActivityModel{},
		&models.DeliveryAssignmentModel{},
		&models.DriverLocationModel{},
		&models.ConversationModel{},
		&models.MessageModel{},
	}
}

// TableStatus reports whether one table exists
type TableStatus struct {
	Table  string
	Exists bool
}

// SchemaStatus checks every table the service uses
func SchemaStatus(db *gorm.DB) []TableStatus {
	m := db.Migrator()
	out := make([]TableStatus, 0, len(schemaModels()))
	for _, model := range schemaModels() {
		out = append(out, TableStatus{Table: model.TableName(), Exists: m.HasTable(model)})
	}
	return out
}

// AutoMigrate creates missing tables and columns. It never drops anything,
// so it is safe against a database whose schema is managed elsewhere.
func AutoMigrate(db *gorm.DB) error {
	for _, model := range schemaModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", model.TableName(), err)
		}
	}
	return nil
}
