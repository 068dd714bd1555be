package config

import "errors"

var (
	ErrParsingConfig     = errors.New("failed to parse config")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	ErrReadingFile       = errors.New("failed to read config file")
	ErrWatchingFile      = errors.New("failed to watch config file")
)
