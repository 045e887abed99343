// Command heliocat maintains a local catalog of solar observation
// files. It scans directories of FITS data, records what it finds in a
// SQLite database, and offers list/show/tag/star operations over the
// collected entries.
package main
