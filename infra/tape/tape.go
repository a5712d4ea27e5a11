// Package tape keeps the executed trades of the running process in an
// ordered key/value store, together with a cursor marking how far they
// have been published. The store lives in memory and is gone when the
// process exits.
package tape

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/rs/zerolog"
)

const (
	tradePrefix  = "trade/"
	tradeUpper   = "trade/~"
	publishedKey = "meta/published"
)

type Config struct {
	// MemTableSize is passed through to pebble when non-zero.
	MemTableSize uint64
	Logger       zerolog.Logger
}

// -------------------- Tape --------------------

type Tape struct {
	db  *pebble.DB
	log zerolog.Logger
}

func Open(cfg Config) (*Tape, error) {
	log := cfg.Logger.With().Str("component", "tape").Logger()
	opts := &pebble.Options{
		FS:         vfs.NewMem(),
		DisableWAL: true,
		Logger:     pebbleLogger{log},
	}
	if cfg.MemTableSize > 0 {
		opts.MemTableSize = cfg.MemTableSize
	}
	db, err := pebble.Open("", opts)
	if err != nil {
		return nil, errors.Wrap(err, "open tape")
	}
	return &Tape{db: db, log: log}, nil
}

func (t *Tape) Close() error {
	return t.db.Close()
}

// -------------------- API --------------------

// Append stores recs in one batch.
func (t *Tape) Append(recs ...Record) error {
	if len(recs) == 0 {
		return nil
	}
	b := t.db.NewBatch()
	defer b.Close()

	for _, r := range recs {
		if err := b.Set(keyFor(r.Seq), encodeRecord(r), nil); err != nil {
			return errors.Wrapf(err, "append trade %d", r.Seq)
		}
	}
	if err := b.Commit(pebble.NoSync); err != nil {
		return errors.Wrap(err, "commit trades")
	}
	t.log.Debug().Uint64("from", recs[0].Seq).Int("count", len(recs)).Msg("trades appended")
	return nil
}

// Get returns the record with the given sequence.
func (t *Tape) Get(seq uint64) (Record, error) {
	val, closer, err := t.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, errors.Wrapf(err, "get trade %d", seq)
	}
	defer closer.Close()
	return decodeRecord(val)
}

// Last returns the highest stored sequence, or 0 on an empty tape.
func (t *Tape) Last() (uint64, error) {
	iter, err := t.tradeIter(0)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseKey(iter.Key())
}

// Published returns the sequence of the last record handed to a consumer.
func (t *Tape) Published() (uint64, error) {
	val, closer, err := t.db.Get([]byte(publishedKey))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read published cursor")
	}
	defer closer.Close()
	if len(val) != 8 {
		return 0, errors.Wrap(ErrCorruptRecord, "published cursor")
	}
	return binary.BigEndian.Uint64(val), nil
}

// MarkPublished moves the cursor forward to seq. It never moves back.
func (t *Tape) MarkPublished(seq uint64) error {
	cur, err := t.Published()
	if err != nil {
		return err
	}
	if seq <= cur {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return errors.Wrap(t.db.Set([]byte(publishedKey), buf[:], pebble.NoSync), "write published cursor")
}

// -------------------- Scan --------------------

// Scan visits records with Seq > after in order until fn returns an error.
func (t *Tape) Scan(after uint64, fn func(Record) error) error {
	iter, err := t.tradeIter(after + 1)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return errors.Wrapf(err, "key %s", iter.Key())
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Pending visits the records after the published cursor.
func (t *Tape) Pending(fn func(Record) error) error {
	cur, err := t.Published()
	if err != nil {
		return err
	}
	return t.Scan(cur, fn)
}

// -------------------- Helpers --------------------

func (t *Tape) tradeIter(from uint64) (*pebble.Iterator, error) {
	iter, err := t.db.NewIter(&pebble.IterOptions{
		LowerBound: keyFor(from),
		UpperBound: []byte(tradeUpper),
	})
	return iter, errors.Wrap(err, "open trade iterator")
}

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", tradePrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(b[len(tradePrefix):]), "%d", &seq)
	return seq, errors.Wrapf(err, "parse key %q", b)
}

// pebbleLogger routes pebble's own messages to zerolog.
type pebbleLogger struct {
	log zerolog.Logger
}

func (l pebbleLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l pebbleLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l pebbleLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatal().Msgf(format, args...)
}
