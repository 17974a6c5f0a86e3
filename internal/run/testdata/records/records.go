// Package records holds record declarations exercised by the run tests.
package records

import "time"

type Server struct {
	Addr     string
	Handlers []string `builder:"each=Handler"`
	Timeout  *time.Duration
	Name     string `builder:"each=Names"`
}

type Broken struct {
	Args []string `builder:"eachh=Arg"`
}

type OptionalRepeated struct {
	Args *[]string `builder:"each=Arg"`
}

type Clash struct {
	Steps []string `builder:"each=Build"`
}

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Color int
