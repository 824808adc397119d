package mem

import "time"

// Options holds mem-specific options.
type Options struct {
	// Username and Password, when Username is set, are the only credentials Authenticate accepts.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// clock returns the current time.  Records carry whole seconds only.
type clock func() time.Time

func defaultClock() time.Time {
	return time.Now()
}
