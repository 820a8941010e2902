package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSQLite opens (and creates if needed) a local sqlite database.
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey across drivers.
func InitSQLite(path string) (*gorm.DB, error) {
	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	return connection, nil
}

// InitMySQL connects to a MySQL database for deployments that outgrow
// the local file store.
func InitMySQL(host string, port int, user, password, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbName)

	connection, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("opening mysql database: %w", err)
	}
	return connection, nil
}
