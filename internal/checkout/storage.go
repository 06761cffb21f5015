package checkout

import "sync"

// Well-known keys shared across funnel pages.
const (
	StorageKeyDraftOrder = "myOrder"
	StorageKeyOrderID    = "orderId"
	StorageKeyOrderType  = "orderType"
	StorageKeyAffiliate  = "ef_aff_id"
)

// Storage is the persisted client state boundary. Implementations must
// survive full page reloads, not just in-memory navigation.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: map[string]string{},
	}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}
