package assets

import (
	"embed"
	"io/fs"
)

//go:embed start.txt dictionary.txt sql/*.sql
var FS embed.FS

// StartList returns the raw base-word list. Parsing is left to the words
// package because base words are taken verbatim.
func StartList() ([]byte, error) {
	return FS.ReadFile("start.txt")
}

// Migrations exposes the sql/ directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is part of the embed pattern; Sub cannot fail for it.
		panic(err)
	}
	return sub
}
