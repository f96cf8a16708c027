// Package cache stores GC series computed for a genome file in a bolt database,
// so repeated renderings of the same file skip the window scan.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/mingzhi/genomap/gc"
	"gopkg.in/vmihailenco/msgpack.v2"
)

var seriesBucket = []byte("series")

// Key identifies a series computed from a source file.
type Key struct {
	Path    string
	Size    int64
	ModTime int64
	Kind    string // content or skew.
	Window  int
	Step    int
}

// NewKey builds a key from the current state of the source file.
func NewKey(fileName, kind string, window, step int) (Key, error) {
	path, err := filepath.Abs(fileName)
	if err != nil {
		return Key{}, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Key{}, err
	}
	return Key{
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime().UnixNano(),
		Kind:    kind,
		Window:  window,
		Step:    step,
	}, nil
}

func (k Key) bytes() []byte {
	return []byte(fmt.Sprintf("%s|%d|%d|%s|%d|%d", k.Path, k.Size, k.ModTime, k.Kind, k.Window, k.Step))
}

type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache database.
func Open(fileName string) (*Cache, error) {
	db, err := bolt.Open(fileName, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", fileName, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(seriesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the series stored under k.
// found is false on a cache miss.
func (c *Cache) Get(k Key) (s gc.Series, found bool, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(seriesBucket).Get(k.bytes())
		if v == nil {
			return nil
		}
		found = true
		return msgpack.Unmarshal(v, &s)
	})
	return
}

// Put stores s under k.
func (c *Cache) Put(k Key, s gc.Series) error {
	value, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(seriesBucket).Put(k.bytes(), value)
	})
}

// Series returns the cached series for k,
// computing and storing it with fn on a miss.
func (c *Cache) Series(k Key, fn func() gc.Series) (gc.Series, error) {
	s, found, err := c.Get(k)
	if err != nil {
		return gc.Series{}, err
	}
	if found {
		return s, nil
	}
	s = fn()
	if err := c.Put(k, s); err != nil {
		return gc.Series{}, err
	}
	return s, nil
}
