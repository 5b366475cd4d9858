// Package config loads typed configuration structs from environment
// variables, optionally seeded from dotenv files.
//
// Parsing is done by github.com/caarlos0/env/v11 and dotenv files are read
// with github.com/joho/godotenv. Each package that needs settings declares its
// own struct with `env` tags (qrcode.Config, logger.Config, file.S3Config,
// httpserver.Config); the commands compose them and call Load once at start.
//
// # Usage
//
//	type serverConfig struct {
//		HTTP   httpserver.Config
//		QR     qrcode.Config
//		Logger logger.Config
//	}
//
//	var cfg serverConfig
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Load returns ErrNilPointer for a nil target, ErrLoadingEnv when an explicit
// env file is missing or malformed, and ErrParsingConfig (joined with the
// parser error) when a value cannot be converted or a required variable is
// absent.
package config
