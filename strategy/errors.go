package strategy

import "errors"

// ErrUnknownStrategy indicates that no strategy is registered under the requested name.
var ErrUnknownStrategy = errors.New("unknown schedule strategy")
