package database

import (
	"github.com/Aodaruma/asg-discordbot/api/env"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sync"
	"time"
)

var databaseConn *gorm.DB
var locker sync.Mutex

func Get() (*gorm.DB, error) {
	var err error

	locker.Lock()
	defer locker.Unlock()
	if databaseConn == nil {
		databaseConn, err = load()
	}

	return databaseConn, err
}

func load() (db *gorm.DB, err error) {
	connString := env.Get("database")
	if connString == "" {
		connString = "asg:asg@/asg?charset=utf8mb4&parseTime=True"
	}

	db, err = gorm.Open(mysql.Open(connString), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if db != nil {
		sqlDb, _ := db.DB()
		sqlDb.SetConnMaxLifetime(time.Second * 10)
		sqlDb.SetMaxIdleConns(0)
		sqlDb.SetMaxOpenConns(10)
	}
	return
}

func Close() {
	locker.Lock()
	defer locker.Unlock()
	if databaseConn == nil {
		return
	}
	sqlDb, err := databaseConn.DB()
	if err == nil {
		_ = sqlDb.Close()
	}
	databaseConn = nil
}
