package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRecord_FixedSize(t *testing.T) {
	data, err := MarshalRecord(PowerRecord{LastBootTime: 1000, LastAliveTime: 91000})
	require.NoError(t, err)
	assert.Len(t, data, RecordSize)
	assert.Equal(t, []byte("PEL1"), data[:4])
}

func TestUnmarshalRecord_RoundTrip(t *testing.T) {
	recs := []PowerRecord{
		{},
		{LastBootTime: 1000, LastAliveTime: 91000},
		{LastBootTime: 1_760_000_000_000, LastAliveTime: 1_760_000_864_000},
		{LastBootTime: -5, LastAliveTime: 0},
	}
	for _, rec := range recs {
		data, err := MarshalRecord(rec)
		require.NoError(t, err)

		got, err := UnmarshalRecord(data)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	}
}

func TestUnmarshalRecord_Short(t *testing.T) {
	_, err := UnmarshalRecord([]byte("PEL1"))
	assert.ErrorIs(t, err, ErrShortRecord)

	_, err = UnmarshalRecord(nil)
	assert.ErrorIs(t, err, ErrShortRecord)
}

func TestUnmarshalRecord_Trailing(t *testing.T) {
	data, err := MarshalRecord(PowerRecord{LastBootTime: 1})
	require.NoError(t, err)

	_, err = UnmarshalRecord(append(data, 0))
	assert.ErrorIs(t, err, ErrTrailingRecord)
}

func TestUnmarshalRecord_BadMagic(t *testing.T) {
	data, err := MarshalRecord(PowerRecord{LastBootTime: 1})
	require.NoError(t, err)
	data[0] = 'X'

	_, err = UnmarshalRecord(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestUnmarshalRecord_TornWrite(t *testing.T) {
	data, err := MarshalRecord(PowerRecord{LastBootTime: 1000, LastAliveTime: 91000})
	require.NoError(t, err)

	// flip a byte inside LastAliveTime
	data[17] ^= 0xFF

	_, err = UnmarshalRecord(data)
	assert.ErrorIs(t, err, ErrBadChecksum)
}
