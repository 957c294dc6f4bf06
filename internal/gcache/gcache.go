// Package gcache is the content-addressed build cache for compiled
// grammars (spec's build-cache non-goal is about re-parsing *input*, not
// re-translating an unchanged *grammar* — see SPEC_FULL.md §4.8). One
// row is stored per distinct grammar source, keyed by its digest; a
// cache hit lets `pegc build` skip the lexer/parser/emitter pipeline
// entirely (`pegc parse` does not consult the cache). Modeled on the teacher's examples/main.go gorm
// model conventions: a gorm.Model-ish primary-key field defaulted in a
// BeforeCreate hook, here using google/uuid instead of the teacher's
// hand-rolled generateUUID.
package gcache

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Entry is one cached grammar build: its source digest, the source text
// itself (for a cheap "did it actually change" recheck), and a
// gob-encoded snapshot of the interned token/choice tables and rule
// names a rebuild would otherwise have to recompute.
type Entry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Digest    string    `gorm:"uniqueIndex" json:"digest"`
	Source    string    `json:"source"`
	Snapshot  []byte    `json:"snapshot"`
	RuleNames string    `json:"ruleNames"` // comma-joined, for quick display without decoding Snapshot
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns the row's primary key if the caller left it
// blank, the same "fill in on insert" hook shape as the teacher's
// User/Task models.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Snapshot is the gob-encodable payload stored in Entry.Snapshot: the
// interned literal/choice tables plus the declared rule names, enough
// to report a cached build's rules and intern tables without re-running
// L3/L4 (it holds no emitter.Descriptor data).
type Snapshot struct {
	Tokens  []TokenSnapshot
	Choices []ChoiceSnapshot
	Rules   []string
}

// TokenSnapshot mirrors grammar.TokenEntry in a form gob can encode
// without importing package grammar here (keeps gcache a leaf
// dependency of grammar, not a cyclic one).
type TokenSnapshot struct {
	Name     string
	Literal  string
	Substr   bool
	Surround string
}

// ChoiceSnapshot mirrors grammar.ChoiceEntry.
type ChoiceSnapshot struct {
	Name         string
	Alternatives int
}

// EncodeSnapshot gob-encodes a Snapshot for storage in Entry.Snapshot.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Store wraps a *gorm.DB scoped to the build-cache schema.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) a sqlite-backed Store at path, or
// ":memory:" for a process-local cache.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Lookup returns the cached Entry for digest, if any.
func (s *Store) Lookup(digest string) (*Entry, bool) {
	var e Entry
	res := s.db.Where("digest = ?", digest).First(&e)
	if res.Error != nil {
		return nil, false
	}
	return &e, true
}

// Put inserts or replaces the cached build for digest. An existing row
// for the same digest is deleted first, since a grammar's source text
// for a given digest never legitimately changes underneath a stable
// hash; this just makes repeated `pegc build` invocations idempotent.
func (s *Store) Put(digest, source string, snapshot Snapshot, ruleNames string) error {
	encoded, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.db.Where("digest = ?", digest).Delete(&Entry{}).Error; err != nil {
		return err
	}
	entry := &Entry{Digest: digest, Source: source, Snapshot: encoded, RuleNames: ruleNames}
	return s.db.Create(entry).Error
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
