package refcal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/daviddao/etime/pkg/model"
)

func TestParseStrftime(t *testing.T) {
	tm, err := parseStrftime("2000 02 29 08 09 07 2 060")
	require.NoError(t, err)
	require.Equal(t, model.Tm{Sec: 7, Min: 9, Hour: 8, MDay: 29, Mon: 1, Year: 100, WDay: 2, YDay: 59}, tm)

	tm, err = parseStrftime("0001 01 01 00 00 00 1 001")
	require.NoError(t, err)
	require.Equal(t, int64(1), tm.FullYear())
	require.Equal(t, 1, tm.WDay)

	_, err = parseStrftime("2000 02 29")
	require.Error(t, err)
	_, err = parseStrftime("garbage")
	require.Error(t, err)
}

func TestSQLiteFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	tm, err := s.Decompose(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, model.Tm{Year: 70, MDay: 1, WDay: 4}, tm)
}

func TestSQLiteHonoursContext(t *testing.T) {
	s, err := NewSQLite("")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Decompose(ctx, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestSQLiteRangeEdges(t *testing.T) {
	s, err := NewSQLite("")
	require.NoError(t, err)
	defer s.Close()

	lo, hi := s.Range()
	first, err := s.Decompose(context.Background(), lo)
	require.NoError(t, err)
	require.Equal(t, model.Tm{Year: 1 - 1900, MDay: 1, WDay: 1}, first)

	last, err := s.Decompose(context.Background(), hi)
	require.NoError(t, err)
	require.Equal(t, model.Tm{Sec: 59, Min: 59, Hour: 23, MDay: 31, Mon: 11, Year: 9999 - 1900, WDay: 5, YDay: 364}, last)
}
