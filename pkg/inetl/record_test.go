package inetl_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/inetl/pkg/inetl"
)

func TestRecord_Strings(t *testing.T) {
	r := inetl.Record{
		Location:      "Afghanistan",
		RateWorldBank: pgtype.Float8{Float64: 11.4, Valid: true},
		YearWorldBank: pgtype.Int4{Int32: 2020, Valid: true},
		RateITU:       pgtype.Float8{Float64: 12, Valid: true},
		YearITU:       pgtype.Int4{Int32: 2019, Valid: true},
		UsersCIA:      pgtype.Int8{Int64: 3000000, Valid: true},
		YearCIA:       pgtype.Int4{Int32: 2021, Valid: true},
	}

	assert.Equal(t,
		[]string{"Afghanistan", "11.4", "2020", "12", "2019", "3000000", "2021", ""},
		r.Strings())
}

func TestRecord_Values_NullsStayNull(t *testing.T) {
	r := inetl.Record{Location: "Albania", Notes: pgtype.Text{String: "est.", Valid: true}}
	values := r.Values()

	assert.Len(t, values, len(inetl.Columns))
	assert.Equal(t, "Albania", values[0])
	assert.Equal(t, pgtype.Float8{}, values[1])
	assert.Equal(t, pgtype.Text{String: "est.", Valid: true}, values[7])
}

func TestRecordsToTable(t *testing.T) {
	records := []inetl.Record{{Location: "A"}, {Location: "B"}}
	table := inetl.RecordsToTable(records)

	assert.Equal(t, inetl.SourceHeaders(), table.Header)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "B", table.Rows[1][0])
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{
		"location", "rate_world_bank", "year_world_bank", "rate_itu",
		"year_itu", "users_cia", "year_cia", "notes",
	}, inetl.ColumnNames())

	for _, c := range inetl.Columns {
		if c.Name == "location" {
			assert.False(t, c.Nullable)
		} else {
			assert.True(t, c.Nullable, c.Name)
		}
	}

	var nilTable *inetl.Table
	assert.Equal(t, 0, nilTable.Len())
}
