// Package shadowing holds records whose field and setter names match
// builtins, imported packages or local types.
package shadowing

import (
	"net/url"
	"time"
)

type tag string

type Queue struct {
	Items []string `builder:"each=Append"`
	Len   int
}

type Schedule struct {
	Time []time.Time `builder:"each=At"`
	Url  []url.URL   `builder:"each=Link"`
}

type Labels struct {
	Tag []tag    `builder:"each=Add"`
	Nil []string `builder:"each=New"`
}

type Links struct {
	URLs []string `builder:"each=URL"`
}
