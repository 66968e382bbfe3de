package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/benbeisheim/chessrules/internal/chess"
)

// Storage keys
const (
	keyStats     = "stats"
	resultPrefix = "result/"
)

var ErrResultNotFound = errors.New("result not found")

// Result is the record of one finished game.
type Result struct {
	GameID     string       `json:"game_id"`
	Outcome    chess.Status `json:"outcome"`
	Winner     string       `json:"winner,omitempty"`
	WhiteScore int          `json:"white_score"`
	BlackScore int          `json:"black_score"`
	Plies      int          `json:"plies"`
	FinishedAt time.Time    `json:"finished_at"`
}

// Stats aggregates every recorded result.
type Stats struct {
	GamesPlayed int            `json:"games_played"`
	Checkmates  int            `json:"checkmates"`
	Stalemates  int            `json:"stalemates"`
	WinsByColor map[string]int `json:"wins_by_color"`
}

// NewStats returns empty statistics
func NewStats() *Stats {
	return &Stats{WinsByColor: make(map[string]int)}
}

// Storage wraps BadgerDB for finished game results
type Storage struct {
	db *badger.DB
}

// Open opens the store under dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult stores a finished game and folds it into the stats in one
// transaction. Recording the same game twice is a no-op.
func (s *Storage) RecordResult(result Result) error {
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := []byte(resultPrefix + result.GameID)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.GamesPlayed++
		switch result.Outcome {
		case chess.Checkmate:
			stats.Checkmates++
		case chess.Stalemate:
			stats.Stalemates++
		}
		if result.Winner != "" {
			stats.WinsByColor[result.Winner]++
		}
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// LoadStats loads the aggregate stats, returns empty stats if nothing was recorded
func (s *Storage) LoadStats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := NewStats()
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	if stats.WinsByColor == nil {
		stats.WinsByColor = make(map[string]int)
	}
	return stats, err
}

// LoadResult loads the result recorded for one game.
func (s *Storage) LoadResult(gameID string) (*Result, error) {
	var result Result
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultPrefix + gameID))
		if err == badger.ErrKeyNotFound {
			return ErrResultNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Results lists every recorded result, ordered by game id.
func (s *Storage) Results() ([]Result, error) {
	var results []Result
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(resultPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r Result
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})
	return results, err
}
