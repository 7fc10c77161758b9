package cache

import (
	"errors"
	"sync"

	"github.com/ludobot/ludo/catalog"
)

var (
	catalogStore *catalog.Store
	catalogMutex sync.RWMutex
)

func SetCatalog(s *catalog.Store) {
	catalogMutex.Lock()
	catalogStore = s
	catalogMutex.Unlock()
}

func GetCatalog() *catalog.Store {
	catalogMutex.RLock()
	defer catalogMutex.RUnlock()

	if catalogStore == nil {
		panic(errors.New("Tried to get catalog store before catalog#SetCatalog() was called"))
	}

	return catalogStore
}

func HasCatalog() bool {
	catalogMutex.RLock()
	defer catalogMutex.RUnlock()

	return catalogStore != nil
}
