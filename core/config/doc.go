// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use, if one exists, and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/httpout/core/config"
//
//	type StorageConfig struct {
//		Bucket string `env:"S3_BUCKET,required"`
//		Region string `env:"S3_REGION" envDefault:"us-east-1"`
//	}
//
//	func main() {
//		var cfg StorageConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// Server, logger and storage configuration types in this module carry env
// tags and can be loaded the same way. Parse failures wrap ErrParse.
package config
