// ABOUTME: JSON persistence of section documents over a storage backend
// ABOUTME: Distinguishes absent from corrupt data and serializes access per key

package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/storage"
)

var (
	ErrNoData      = errors.New("no data")
	ErrCorrupt     = errors.New("corrupt data")
	ErrSaveFailed  = errors.New("save failed")
	ErrUnavailable = errors.New("storage unavailable")
)

// Policy decides what happens to collection elements that fail to decode.
type Policy int

const (
	// FilterInvalid keeps the elements that decode and drops the rest.
	FilterInvalid Policy = iota
	// WholeOrNothing rejects the whole document on the first bad element.
	WholeOrNothing
)

func (p Policy) String() string {
	if p == WholeOrNothing {
		return "whole-or-nothing"
	}
	return "filter"
}

// LoadReport summarizes a collection load.
type LoadReport struct {
	Key     string
	Loaded  int
	Dropped int
}

// Adapter reads and writes JSON documents. Safe for concurrent use.
type Adapter struct {
	kv     storage.KV
	notify prompt.Notifier
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Adapter)

// WithNotifier sets where user-facing persistence warnings go.
func WithNotifier(n prompt.Notifier) Option {
	return func(a *Adapter) { a.notify = n }
}

func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

func New(kv storage.KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		notify: prompt.Discard{},
		logger: log.New(io.Discard),
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Notifier returns the adapter's notifier so stores can report through the
// same channel.
func (a *Adapter) Notifier() prompt.Notifier {
	return a.notify
}

func (a *Adapter) Logger() *log.Logger {
	return a.logger
}

func (a *Adapter) lock(key string) func() {
	a.mu.Lock()
	l, ok := a.locks[key]
	if !ok {
		l = &sync.Mutex{}
		a.locks[key] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Save encodes v as JSON and writes it under key. On failure the user is
// warned and the error wraps ErrSaveFailed.
func (a *Adapter) Save(key string, v interface{}) error {
	unlock := a.lock(key)
	defer unlock()
	return a.save(key, v)
}

func (a *Adapter) save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return a.saveFailed(key, err)
	}
	if err := a.set(key, string(data)); err != nil {
		return a.saveFailed(key, err)
	}
	a.logger.Debug("saved", "key", key, "bytes", len(data))
	return nil
}

func (a *Adapter) saveFailed(key string, err error) error {
	a.logger.Error("save failed", "key", key, "err", err)
	a.notify.Warn(fmt.Sprintf("%s 저장에 실패했습니다: %v", models.SectionLabel(key), err))
	return fmt.Errorf("%w: %s: %v", ErrSaveFailed, key, err)
}

// Read returns the decoded JSON value under key: ErrNoData when nothing is
// stored, ErrCorrupt when the text is not JSON, ErrUnavailable when the
// backend itself fails.
func (a *Adapter) Read(key string) (interface{}, error) {
	unlock := a.lock(key)
	defer unlock()
	return a.read(key)
}

func (a *Adapter) read(key string) (interface{}, error) {
	text, err := a.get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		a.logger.Error("read failed", "key", key, "err", err)
		a.notify.Warn(fmt.Sprintf("%s 데이터를 불러오지 못했습니다: %v", models.SectionLabel(key), err))
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, key, err)
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		a.logger.Warn("corrupt document", "key", key, "err", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if raw == nil {
		return nil, ErrNoData
	}
	return raw, nil
}

// Remove deletes key from storage.
func (a *Adapter) Remove(key string) error {
	unlock := a.lock(key)
	defer unlock()
	if err := a.remove(key); err != nil {
		return a.saveFailed(key, err)
	}
	return nil
}

// Mutate applies fn to the raw document under key and saves the result, all
// while holding the key's lock. Errors from reading or from fn are returned
// unchanged and nothing is written.
func (a *Adapter) Mutate(key string, fn func(raw interface{}) (interface{}, error)) error {
	unlock := a.lock(key)
	defer unlock()

	raw, err := a.read(key)
	if err != nil {
		return err
	}
	next, err := fn(raw)
	if err != nil {
		return err
	}
	return a.save(key, next)
}

// LoadList reads the array under key and decodes each element. A non-array
// document is corrupt regardless of policy.
func LoadList[T any](a *Adapter, key string, decode func(interface{}) (T, error), policy Policy) ([]T, LoadReport, error) {
	report := LoadReport{Key: key}

	raw, err := a.Read(key)
	if err != nil {
		return nil, report, err
	}
	elems, ok := raw.([]interface{})
	if !ok {
		a.logger.Warn("expected an array", "key", key, "got", fmt.Sprintf("%T", raw))
		return nil, report, fmt.Errorf("%w: %s is not an array", ErrCorrupt, key)
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		v, err := decode(elem)
		if err != nil {
			if policy == WholeOrNothing {
				a.logger.Warn("rejecting document", "key", key, "index", i, "err", err)
				return nil, report, fmt.Errorf("%w: %s element %d: %v", ErrCorrupt, key, i, err)
			}
			report.Dropped++
			a.logger.Debug("dropped element", "key", key, "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	report.Loaded = len(out)
	return out, report, nil
}

// The storage port is an injected collaborator; a panicking driver must not
// take the editor down with it.
func (a *Adapter) get(key string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver panic: %v", r)
		}
	}()
	return a.kv.Get(key)
}

func (a *Adapter) set(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver panic: %v", r)
		}
	}()
	return a.kv.Set(key, value)
}

func (a *Adapter) remove(key string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver panic: %v", r)
		}
	}()
	return a.kv.Remove(key)
}
