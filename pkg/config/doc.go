// Package config loads typed configuration structs from environment
// variables (via caarlos0/env struct tags), with optional .env file
// support for local development. Each struct type is parsed once per
// process and cached, so the database layer, the tenancy allow-list,
// and the logger all read one consistent snapshot of the environment.
package config
