package kvstore

import (
	"errors"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound key 不存在
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrClosed 存储已关闭
	ErrClosed = errors.New("kvstore: closed")
)

// Options 存储配置
type Options struct {
	MemTableSize int64 // memtable 大小, 0 使用默认值
	Logger       zerolog.Logger
}

// InMemory 内存存储配置
func InMemory() Options {
	return Options{MemTableSize: 8 << 20, Logger: zerolog.Nop()}
}

// Store 内存模式的 badger 存储, 不落盘
type Store struct {
	db   *badger.DB
	done chan struct{} // 退出信号

	closeOnce sync.Once
	err       error
}

// Open 打开存储
func Open(opt Options) (*Store, error) {
	bo := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(&badgerLogger{l: opt.Logger})
	if opt.MemTableSize > 0 {
		bo = bo.WithMemTableSize(opt.MemTableSize)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, done: make(chan struct{})}, nil
}

// Close 关闭存储, 可重复调用
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.err = s.db.Close()
	})
	return s.err
}

func (s *Store) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
