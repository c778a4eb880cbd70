package db

type Config struct {
	Type     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	// File is the database path when Type is sqlite.
	File string
}
