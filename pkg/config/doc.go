// Package config loads env-tagged configuration structs from the
// process environment, optionally seeded from a .env file.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg := config.MustLoad[HTTPConfig]()
package config
