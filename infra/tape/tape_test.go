package tape

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTape(t *testing.T) *Tape {
	t.Helper()
	tp, err := Open(Config{Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Close() })
	return tp
}

func rec(seq uint64) Record {
	return Record{
		Seq:      seq,
		TradeID:  uuid.Must(uuid.NewV7()),
		BidOrder: seq * 10,
		AskOrder: seq*10 + 1,
		Price:    400 + int64(seq),
		Quantity: 5,
		Time:     1_700_000_000_000_000_000 + int64(seq),
	}
}

func collect(t *testing.T, scan func(func(Record) error) error) []uint64 {
	t.Helper()
	var seqs []uint64
	require.NoError(t, scan(func(r Record) error {
		seqs = append(seqs, r.Seq)
		return nil
	}))
	return seqs
}

func TestRecordCodec(t *testing.T) {
	r := rec(3)
	r.Price = -1
	got, err := decodeRecord(encodeRecord(r))
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRecordCorrupt(t *testing.T) {
	b := encodeRecord(rec(1))
	b[len(b)-1] ^= 0xff
	_, err := decodeRecord(b)
	require.ErrorIs(t, err, ErrCorruptRecord)

	_, err = decodeRecord([]byte{1, 2})
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestAppendAndScan(t *testing.T) {
	tp := openTape(t)
	require.NoError(t, tp.Append(rec(1), rec(2)))
	require.NoError(t, tp.Append(rec(3)))
	require.NoError(t, tp.Append())

	all := collect(t, func(fn func(Record) error) error { return tp.Scan(0, fn) })
	assert.Equal(t, []uint64{1, 2, 3}, all)

	tail := collect(t, func(fn func(Record) error) error { return tp.Scan(2, fn) })
	assert.Equal(t, []uint64{3}, tail)

	got, err := tp.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(402), got.Price)

	last, err := tp.Last()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), last)
}

func TestScanOrdersNumerically(t *testing.T) {
	tp := openTape(t)
	require.NoError(t, tp.Append(rec(10), rec(9), rec(100)))
	all := collect(t, func(fn func(Record) error) error { return tp.Scan(0, fn) })
	assert.Equal(t, []uint64{9, 10, 100}, all)
}

func TestEmptyTape(t *testing.T) {
	tp := openTape(t)
	last, err := tp.Last()
	require.NoError(t, err)
	assert.Zero(t, last)

	pub, err := tp.Published()
	require.NoError(t, err)
	assert.Zero(t, pub)

	assert.Empty(t, collect(t, tp.Pending))
}

func TestPublishedCursor(t *testing.T) {
	tp := openTape(t)
	require.NoError(t, tp.Append(rec(1), rec(2), rec(3)))

	require.NoError(t, tp.MarkPublished(2))
	assert.Equal(t, []uint64{3}, collect(t, tp.Pending))

	// never moves back
	require.NoError(t, tp.MarkPublished(1))
	pub, err := tp.Published()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), pub)

	require.NoError(t, tp.MarkPublished(3))
	assert.Empty(t, collect(t, tp.Pending))
}

func TestScanStopsOnError(t *testing.T) {
	tp := openTape(t)
	require.NoError(t, tp.Append(rec(1), rec(2)))

	boom := errors.New("boom")
	var seen int
	err := tp.Scan(0, func(Record) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}
