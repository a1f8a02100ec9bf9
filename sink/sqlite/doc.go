// Package sqlite exports decoded copybook records into a SQLite table.
//
// Each leaf field of the schema becomes one column. Group paths are joined
// with underscores, so a field at customer.address.zip is stored in the
// column customer_address_zip. Integer fields map to INTEGER columns;
// alphanumerics and decimals are stored as TEXT so decimal digits are kept
// exactly.
//
//	sink, err := sqlite.Open("records.db")
//	table, err := sink.CreateTable(ctx, schema)
//	n, err := table.Insert(ctx, records)
package sqlite
