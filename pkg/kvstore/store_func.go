package kvstore

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// TxFunc 事务函数
type TxFunc func(txn *badger.Txn) error

// Update 读写事务
func (s *Store) Update(fn TxFunc) error {
	if s.closed() {
		return ErrClosed
	}
	return s.db.Update(fn)
}

// View 只读事务
func (s *Store) View(fn TxFunc) error {
	if s.closed() {
		return ErrClosed
	}
	return s.db.View(fn)
}

// Set 设置参数
func (s *Store) Set(key, value []byte) error {
	return s.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get 获取参数, key 不存在时返回 ErrNotFound
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

// ScanFunc 遍历回调, 返回 false 停止遍历
// key 与 value 仅在回调期间有效
type ScanFunc func(key, value []byte) (bool, error)

// Scan 按前缀遍历, prefix 为 nil 时遍历全部
func (s *Store) Scan(prefix []byte, fn ScanFunc) error {
	return s.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var cont bool
			err := item.Value(func(val []byte) error {
				var err error
				cont, err = fn(item.Key(), val)
				return err
			})
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
		return nil
	})
}

// ScanKeys 按前缀遍历key, 不读取value
func (s *Store) ScanKeys(prefix []byte, fn func(key []byte) (bool, error)) error {
	return s.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			cont, err := fn(it.Item().Key())
			if err != nil || !cont {
				return err
			}
		}
		return nil
	})
}
