// Package config loads typed configuration structs from environment
// variables using caarlos0/env struct tags, with optional dotenv files for
// local development. Each struct type is parsed once per process and cached,
// so separate components can load their own config section without
// re-reading the environment.
package config
