package clients

import "errors"

var ErrCacheMiss = errors.New("cache miss")
