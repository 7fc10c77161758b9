package cache

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

var (
	db      *gorm.DB
	dbMutex sync.RWMutex
)

func SetDB(d *gorm.DB) {
	dbMutex.Lock()
	db = d
	dbMutex.Unlock()
}

func GetDB() *gorm.DB {
	dbMutex.RLock()
	defer dbMutex.RUnlock()

	if db == nil {
		panic(errors.New("Tried to get database handle before db#SetDB() was called"))
	}

	return db
}
