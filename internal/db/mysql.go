package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/model"
)

// NewMySQL opens the storefront database and migrates the schema for
// every persisted model: catalog (categories, products) and auth
// (users, sessions).
func NewMySQL(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	if err := gdb.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.User{},
		&model.Session{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return gdb, nil
}
