// Package config provides configuration loading for speechkit services.
//
// It uses Viper to read config.yml from standard locations, godotenv to
// load .env files, and binds environment variables over file values so
// deployments can override any key without editing files.
//
// # Usage
//
//	var cfg config.Config
//	err := config.Load("speechkitd", &cfg)
package config
