package load

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// afghanistanAlbania returns the transformed reference rows.
func afghanistanAlbania() []inetl.Record {
	return []inetl.Record{
		{
			Location:      "Afghanistan",
			RateWorldBank: pgtype.Float8{Float64: 11.4, Valid: true},
			YearWorldBank: pgtype.Int4{Int32: 2020, Valid: true},
			RateITU:       pgtype.Float8{Float64: 12, Valid: true},
			YearITU:       pgtype.Int4{Int32: 2019, Valid: true},
			UsersCIA:      pgtype.Int8{Int64: 3000000, Valid: true},
			YearCIA:       pgtype.Int4{Int32: 2021, Valid: true},
		},
		{
			Location: "Albania",
			RateITU:  pgtype.Float8{Float64: 66, Valid: true},
			YearITU:  pgtype.Int4{Int32: 2021, Valid: true},
			Notes:    pgtype.Text{String: "est.", Valid: true},
		},
	}
}

// selectRecords is the query used to read a loaded table back.
const selectRecords = `SELECT location, rate_world_bank, year_world_bank, rate_itu, year_itu, users_cia, year_cia, notes FROM %s ORDER BY location`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (inetl.Record, error) {
	var r inetl.Record
	err := row.Scan(&r.Location, &r.RateWorldBank, &r.YearWorldBank, &r.RateITU, &r.YearITU, &r.UsersCIA, &r.YearCIA, &r.Notes)
	return r, err
}
