// Package database provides a thin synchronous client over an embedded
// SQLite engine (modernc.org/sqlite, pure Go). Results come back as
// []Row / Row maps keyed by column name; Transaction gives all-or-nothing
// execution with automatic rollback on error or panic.
//
//	db, err := database.Open(":memory:")
//	...
//	res, err := db.Transaction(func(tx *database.Tx) (any, error) {
//		if _, err := tx.Exec(`INSERT INTO users (name) VALUES (?)`, "ada"); err != nil {
//			return nil, err
//		}
//		return tx.QueryOne(`SELECT * FROM users WHERE name = ?`, "ada")
//	})
package database
