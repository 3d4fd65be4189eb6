// Package config turns the viper configuration tree into an immutable
// Settings record. Settings is built once by the entry point and handed to
// every component; nothing in the job reads viper after that.
package config
