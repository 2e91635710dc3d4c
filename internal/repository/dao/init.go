package dao

import (
	"fmt"

	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Event{},
		&Order{},
		&Ticket{},
		&Draw{},
		&TicketSequence{},
	)
	if err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	for _, stmt := range schemaStatements {
		if err = db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("db.Exec -> %w", err)
		}
	}

	return nil
}
