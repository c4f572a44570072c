package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

var byteOrder = binary.LittleEndian

// RecordSize is the fixed on-medium size of an encoded PowerRecord.
// Layout: magic(4) reserved(4) boot(int64) alive(int64) xxhash64(8)
const RecordSize = 32

var recordMagic = [4]byte{'P', 'E', 'L', '1'}

var (
	ErrShortRecord    = errors.New("record too short")
	ErrBadMagic       = errors.New("record magic mismatch")
	ErrBadChecksum    = errors.New("record checksum mismatch")
	ErrTrailingRecord = errors.New("record has trailing bytes")
)

// writeRecordBody writes everything covered by the checksum.
func writeRecordBody(w io.Writer, r PowerRecord) error {
	if _, err := w.Write(recordMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(0)); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, r.LastBootTime); err != nil {
		return err
	}
	return binary.Write(w, byteOrder, r.LastAliveTime)
}

// MarshalRecord encodes r into its fixed 32-byte form.
func MarshalRecord(r PowerRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(RecordSize)
	if err := writeRecordBody(&buf, r); err != nil {
		return nil, err
	}
	sum := xxhash.Sum64(buf.Bytes())
	if err := binary.Write(&buf, byteOrder, sum); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalRecord decodes and verifies a record produced by MarshalRecord.
func UnmarshalRecord(data []byte) (PowerRecord, error) {
	switch {
	case len(data) < RecordSize:
		return PowerRecord{}, fmt.Errorf("%w: %d bytes", ErrShortRecord, len(data))
	case len(data) > RecordSize:
		return PowerRecord{}, fmt.Errorf("%w: %d bytes", ErrTrailingRecord, len(data))
	}
	if !bytes.Equal(data[:4], recordMagic[:]) {
		return PowerRecord{}, ErrBadMagic
	}

	body := data[:RecordSize-8]
	want := byteOrder.Uint64(data[RecordSize-8:])
	if xxhash.Sum64(body) != want {
		return PowerRecord{}, ErrBadChecksum
	}

	var rec PowerRecord
	r := bytes.NewReader(data[8:])
	if err := binary.Read(r, byteOrder, &rec.LastBootTime); err != nil {
		return PowerRecord{}, err
	}
	if err := binary.Read(r, byteOrder, &rec.LastAliveTime); err != nil {
		return PowerRecord{}, err
	}
	return rec, nil
}
