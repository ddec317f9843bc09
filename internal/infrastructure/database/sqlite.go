package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriver is go-sqlite3 with lower() and upper() replaced by Unicode
// case mapping. The SQLite built-ins only fold ASCII letters.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("lower", mapText(strings.ToLower), true); err != nil {
				return err
			}
			return conn.RegisterFunc("upper", mapText(strings.ToUpper), true)
		},
	})
}

// mapText applies fn to TEXT values and passes everything else through.
// NULL arrives as a nil []byte and is returned as NULL.
func mapText(fn func(string) string) func(any) any {
	return func(v any) any {
		switch x := v.(type) {
		case string:
			return fn(x)
		case []byte:
			if x == nil {
				return nil
			}
		}
		return v
	}
}
