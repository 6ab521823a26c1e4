package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./bookshelf.db"

	DefaultOpenLibraryURL = "https://openlibrary.org"
	DefaultUserAgent      = "Bookshelf/1.0 (personal book tracker)"
)
