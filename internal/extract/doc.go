// Package extract reads the delimited source file into an in-memory raw table.
//
// Values are kept exactly as they appear in the file; cleaning is the
// transformer's job. The extractor only guarantees that the result is a
// rectangular table whose header contains every required column.
//
// # Example Usage
//
//	ex := extract.New(logger, extract.WithEncoding("windows-1252"))
//	table, err := ex.Extract(ctx, "internet_users.csv")
//	if errors.Is(err, inetl.ErrSourceNotFound) {
//	    // file is missing
//	}
package extract
