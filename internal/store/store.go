package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/CyberCatD/youtube-to-list-app/internal/domain"
)

// Key prefixes.
const (
	recipePrefix      = "recipe:"
	groceryListPrefix = "grocery_list:"
	recipeSeqKey      = "seq:recipe"
)

// recipeSeqBandwidth is how many recipe ids are leased from disk at a time.
const recipeSeqBandwidth = 100

// BadgerStore is the Badger-backed Store.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	listMu sync.Mutex // serializes UpdateGroceryListFunc

	recipeSeq    *badger.Sequence
	recipes      *Entity[domain.Recipe]
	groceryLists *Entity[domain.GroceryList]
}

var _ Store = (*BadgerStore)(nil)

// Open opens or creates a Badger database in dir.
func Open(dir string, logger *slog.Logger) (*BadgerStore, error) {
	return open(badger.DefaultOptions(dir), logger)
}

// OpenInMemory opens a Badger database that lives only in memory.
func OpenInMemory(logger *slog.Logger) (*BadgerStore, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger)
}

func open(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts.Logger = nil // Badger's own logging is too chatty.
	if !opts.InMemory {
		opts.SyncWrites = true
		opts.CompactL0OnClose = true
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	seq, err := db.GetSequence([]byte(recipeSeqKey), recipeSeqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open recipe sequence: %w", err)
	}

	s := &BadgerStore{
		db:        db,
		logger:    logger,
		recipeSeq: seq,
		recipes: NewEntity[domain.Recipe](db, recipePrefix).
			WithIndexTransform("source_url", recipeSourceURLKeys, normalizeSourceURL),
		groceryLists: NewEntity[domain.GroceryList](db, groceryListPrefix),
	}

	logger.Info("Badger database opened", "path", opts.Dir, "in_memory", opts.InMemory)
	return s, nil
}

// Ping checks that the database is open.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return wrapf(badger.ErrDBClosed, "badger database closed")
	}
	return nil
}

// Close releases the id sequence and closes the database. Closing twice is
// a no-op.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	s.logger.Info("Closing database connection")
	if err := s.recipeSeq.Release(); err != nil {
		s.logger.Warn("Failed to release recipe sequence", "error", err)
	}
	return s.db.Close()
}
