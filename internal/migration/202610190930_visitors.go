package migration

import (
	"fmt"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/sqlsafe"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// visitorNameIndex speeds up prefix searches on visitor names.
const visitorNameIndex = "idx_visitors_last_name_first_name"

var Initialise = &gormigrate.Migration{
	ID: "202610190930-gs-visitors",
	Migrate: func(db *gorm.DB) error {
		if err := db.AutoMigrate(&models.Building{}, &models.Visitor{}); err != nil {
			return err
		}
		stmt, err := createIndexStatement(visitorNameIndex, "visitors", "last_name", "first_name")
		if err != nil {
			return err
		}
		return db.Exec(stmt).Error
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable(&models.Visitor{}, &models.Building{})
	},
}

// createIndexStatement quotes every name strictly: schema changes fail rather
// than truncate an identifier.
func createIndexStatement(index, table string, columns ...string) (string, error) {
	quotedIndex, err := sqlsafe.QuoteIdentifier(index)
	if err != nil {
		return "", fmt.Errorf("index name: %w", err)
	}
	quotedTable, err := sqlsafe.QuoteIdentifier(table)
	if err != nil {
		return "", fmt.Errorf("table name: %w", err)
	}
	stmt := "CREATE INDEX IF NOT EXISTS " + quotedIndex + " ON " + quotedTable + " ("
	for i, column := range columns {
		quoted, err := sqlsafe.QuoteIdentifier(column)
		if err != nil {
			return "", fmt.Errorf("column name: %w", err)
		}
		if i > 0 {
			stmt += ", "
		}
		stmt += quoted
	}
	return stmt + ")", nil
}
