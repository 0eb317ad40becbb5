package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

type Opts struct {
	Driver         string // "postgres" or "mysql"
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnMaxLifeMin int
	LogLevel       string
}

// DSN assembles the driver connection string from the discrete connection
// parameters carried by config.
func (o Opts) DSN() (string, error) {
	switch o.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			o.Host, o.Port, o.User, o.Password, o.Name), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
			o.User, o.Password, o.Host, o.Port, o.Name), nil
	default:
		return "", ErrUnsupportedDriver
	}
}

// Open connects via GORM and applies pool settings. It does not verify the
// server is reachable; that is WaitReady's job.
func Open(o Opts) (*gorm.DB, error) {
	dsn, err := o.DSN()
	if err != nil {
		return nil, err
	}

	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	}

	lvl := gormlogger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	}

	// Ping is left to WaitReady so Open succeeds even while the server is
	// still coming up.
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               gormlogger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifeMin) * time.Minute)

	return db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	}), nil
}
