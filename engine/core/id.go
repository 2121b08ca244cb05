package core

import "github.com/segmentio/ksuid"

// ID identifies a single execution for event correlation.
type ID string

func MustNewID() ID {
	return ID(ksuid.New().String())
}

func (i ID) String() string {
	return string(i)
}
