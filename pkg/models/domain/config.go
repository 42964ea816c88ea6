package domain

import "fmt"

// DialectProfile names one configured report dialect.
type DialectProfile struct {
	Name   string
	Source string
}

func (c DialectProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Source, c.Name)
}
