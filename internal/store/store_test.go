package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTallies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "district", "paslon1", "paslon2", "paslon3", "visits"}).
		AddRow("Papanggo", "Tanjung Priok", 1200, 800, 300, 40).
		AddRow("Sunter Agung", "", 900, 950, 100, 12)
	mock.ExpectQuery("SELECT name, district, paslon1, paslon2, paslon3, visits FROM _region_tallies").
		WithArgs("village").
		WillReturnRows(rows)

	s := AttachDB(db)
	out, err := s.ListTallies(context.Background(), "village")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Papanggo", out[0].Name)
	assert.Equal(t, "Tanjung Priok", out[0].District)
	assert.Equal(t, int64(1200), out[0].Paslon1)
	assert.Equal(t, "", out[1].District)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertTally(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO _region_tallies").
		WithArgs("district", "Tanjung Priok", "", int64(5000), int64(4200), int64(900), int64(75)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := AttachDB(db)
	err = s.UpsertTally(context.Background(), "district", Tally{
		Name: "Tanjung Priok", Paslon1: 5000, Paslon2: 4200, Paslon3: 900, Visits: 75,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT total_queries FROM _region_stats_total").
		WillReturnRows(sqlmock.NewRows([]string{"total_queries"}).AddRow(321))
	mock.ExpectQuery("SELECT queries FROM _region_stats_daily").
		WillReturnRows(sqlmock.NewRows([]string{"queries"}).AddRow(7))

	s := AttachDB(db)
	tot, err := s.GetTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(321), tot.Total)
	assert.Equal(t, int64(7), tot.Today)
}
