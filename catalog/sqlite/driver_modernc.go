//go:build !cgo_sqlite

package sqlite

import _ "modernc.org/sqlite"

// DriverName selects the pure Go SQLite driver by default; build with
// -tags cgo_sqlite for the CGO driver.
const DriverName = "sqlite"
