// Package crimestats is the client for the yearly crime statistics backend.
//
// The backend answers a region + year range query with a JSON array of
// yearly records, one per year, each carrying the year and one count per
// offense:
//
//	GET http://localhost:9000/burglary/data?state=AK&from=2012&to=2022
//
//	[{"data_year": 2012, "Burglary": 4213, "Larceny": 15820}, ...]
//
// [Client.Yearly] validates the query, fetches through the shared
// integrations client (retry + cache) and returns records ordered by year.
// Concurrent identical queries share a single backend round trip.
package crimestats
