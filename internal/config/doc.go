// Package config loads nvsetup's own configuration file.
//
// The file is optional; every setting has a flag equivalent and the zero
// value of Config is a fully working default. Search order is the current
// directory, then the XDG config home (~/.config/nvsetup/config.yaml on
// Linux). Values can also be supplied through NVSETUP_* environment
// variables.
package config
