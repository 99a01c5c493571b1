package domain

import "path/filepath"

type CatalogFile string

const (
	DocumentFile CatalogFile = "anime_data.json"
	EpisodesFile CatalogFile = "episodes-master.yaml"
	CacheDBFile  CatalogFile = "animedexdb.db"
)

type CatalogPath string

// Paths holds all the file paths the catalog tools read and write
type Paths struct {
	RootDir      string
	DocumentPath CatalogPath
	EpisodesPath CatalogPath
	CacheDBPath  CatalogPath
}

// NewPaths creates a new Paths instance with all paths initialized.
// Empty file names fall back to the defaults.
func NewPaths(rootDir, documentFile, episodesFile string) *Paths {
	if documentFile == "" {
		documentFile = string(DocumentFile)
	}
	if episodesFile == "" {
		episodesFile = string(EpisodesFile)
	}

	return &Paths{
		RootDir:      rootDir,
		DocumentPath: makeCatalogPath(rootDir, CatalogFile(documentFile)),
		EpisodesPath: makeCatalogPath(rootDir, CatalogFile(episodesFile)),
		CacheDBPath:  makeCatalogPath(rootDir, CacheDBFile),
	}
}

func makeCatalogPath(rootDir string, cf CatalogFile) CatalogPath {
	if filepath.IsAbs(string(cf)) {
		return CatalogPath(cf)
	}
	return CatalogPath(filepath.Join(rootDir, string(cf)))
}
