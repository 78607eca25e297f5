package assets

import (
	"embed"
)

//go:embed contestants.json
var FS embed.FS

// ContestantsJSON returns the raw embedded roster dataset.
func ContestantsJSON() ([]byte, error) {
	return FS.ReadFile("contestants.json")
}
