package sessions

// Storage is a durable key-value slot. Get returns errors.ErrNotFound when
// the key holds nothing; Remove on an absent key is not an error.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

type prefixedStorage struct {
	namespace string
	storage   Storage
}

// Prefixed scopes every key of storage under namespace, giving each device
// its own copy of the fixed session slot.
func Prefixed(storage Storage, namespace string) Storage {
	return prefixedStorage{namespace: namespace, storage: storage}
}

func (p prefixedStorage) key(key string) string {
	return p.namespace + "/" + key
}

func (p prefixedStorage) Get(key string) ([]byte, error) {
	return p.storage.Get(p.key(key))
}

func (p prefixedStorage) Set(key string, value []byte) error {
	return p.storage.Set(p.key(key), value)
}

func (p prefixedStorage) Remove(key string) error {
	return p.storage.Remove(p.key(key))
}
