// Package catalog defines the observation entry model and the ingestion
// pathways that produce entries from FITS headers, FITS files, directory
// scans, and remote query results.
//
// Entries are plain records: persistence lives in internal/store and
// assigns IDs on save. Equality between entries follows the catalog's
// comparison contract, which treats an unassigned ID as a wildcard so an
// unpersisted entry can be compared against its persisted counterpart.
package catalog
