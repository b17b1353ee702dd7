package types

import (
	"errors"
	"strings"
)

// Defaults applied by Config.Normalize.
const (
	DefaultListenAddr = ":8080"
	DefaultRegion     = "selangor"
)

// Config holds backend parameters for Backend.Attach and the serve command.
type Config struct {
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	ListenAddr    string `json:"listen_addr" yaml:"listen_addr"`
	DefaultRegion string `json:"default_region" yaml:"default_region"`
}

// Config validation errors.
var (
	ErrListenAddrInvalid = errors.New("listen_addr must be host:port")
)

// Normalize returns a copy of c with defaults filled in for unset fields.
func (c Config) Normalize() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.DefaultRegion == "" {
		c.DefaultRegion = DefaultRegion
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.ListenAddr != "" && !strings.Contains(c.ListenAddr, ":") {
		return ErrListenAddrInvalid
	}
	return nil
}
