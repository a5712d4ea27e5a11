package tape

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

var ErrCorruptRecord = errors.New("tape: corrupt record")

// -------------------- Record --------------------

// Record is one executed trade as kept on the tape.
type Record struct {
	Seq      uint64
	TradeID  uuid.UUID
	BidOrder uint64
	AskOrder uint64
	Price    int64 // ticks
	Quantity int64
	Time     int64 // unix nanos
}

const (
	fieldSeq protowire.Number = iota + 1
	fieldTradeID
	fieldBidOrder
	fieldAskOrder
	fieldPrice
	fieldQuantity
	fieldTime
)

// encoding: [crc:4][protobuf body]
func encodeRecord(r Record) []byte {
	body := make([]byte, 4, 64)
	body = protowire.AppendTag(body, fieldSeq, protowire.VarintType)
	body = protowire.AppendVarint(body, r.Seq)
	body = protowire.AppendTag(body, fieldTradeID, protowire.BytesType)
	body = protowire.AppendBytes(body, r.TradeID[:])
	body = protowire.AppendTag(body, fieldBidOrder, protowire.VarintType)
	body = protowire.AppendVarint(body, r.BidOrder)
	body = protowire.AppendTag(body, fieldAskOrder, protowire.VarintType)
	body = protowire.AppendVarint(body, r.AskOrder)
	body = protowire.AppendTag(body, fieldPrice, protowire.VarintType)
	body = protowire.AppendVarint(body, protowire.EncodeZigZag(r.Price))
	body = protowire.AppendTag(body, fieldQuantity, protowire.VarintType)
	body = protowire.AppendVarint(body, protowire.EncodeZigZag(r.Quantity))
	body = protowire.AppendTag(body, fieldTime, protowire.VarintType)
	body = protowire.AppendVarint(body, protowire.EncodeZigZag(r.Time))

	binary.BigEndian.PutUint32(body[:4], crc32.ChecksumIEEE(body[4:]))
	return body
}

func decodeRecord(b []byte) (Record, error) {
	if len(b) < 4 {
		return Record{}, errors.Wrap(ErrCorruptRecord, "short value")
	}
	body := b[4:]
	if crc32.ChecksumIEEE(body) != binary.BigEndian.Uint32(b[:4]) {
		return Record{}, errors.Wrap(ErrCorruptRecord, "checksum mismatch")
	}

	var r Record
	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return Record{}, errors.Wrap(ErrCorruptRecord, protowire.ParseError(n).Error())
		}
		body = body[n:]

		switch {
		case num == fieldTradeID && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(body)
			if m < 0 || len(v) != len(r.TradeID) {
				return Record{}, errors.Wrap(ErrCorruptRecord, "trade id")
			}
			copy(r.TradeID[:], v)
			n = m
		case typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(body)
			if m < 0 {
				return Record{}, errors.Wrap(ErrCorruptRecord, protowire.ParseError(m).Error())
			}
			switch num {
			case fieldSeq:
				r.Seq = v
			case fieldBidOrder:
				r.BidOrder = v
			case fieldAskOrder:
				r.AskOrder = v
			case fieldPrice:
				r.Price = protowire.DecodeZigZag(v)
			case fieldQuantity:
				r.Quantity = protowire.DecodeZigZag(v)
			case fieldTime:
				r.Time = protowire.DecodeZigZag(v)
			}
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, body)
			if n < 0 {
				return Record{}, errors.Wrap(ErrCorruptRecord, protowire.ParseError(n).Error())
			}
		}
		body = body[n:]
	}
	return r, nil
}
