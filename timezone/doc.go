// Package timezone provides the time-zone directory used when coercing
// time_zone attributes. Catalog resolves both IANA names and the friendly
// names Rails applications emit; extra aliases can be loaded from YAML:
//
//	"Head Office": Europe/Berlin
//	"Warehouse":   America/Chicago
package timezone
