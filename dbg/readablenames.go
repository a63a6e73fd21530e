package dbg

import (
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// Label assigns a stable, human-readable pseudonym to a mesh vertex index,
// memoized for the lifetime of the process. A rendered mesh is easier to
// eyeball across screenshots with "CurlyMongoose" than with "vertex 4812".

var vertexNames map[int32]string

func init() {
	vertexNames = make(map[int32]string)
	// Names are handed out in the order vertices are first rendered, not in
	// index order, so make them nondeterministic to avoid implying one.
	petname.NonDeterministicMode()
}

func Label(vertex int32) string {
	if r, ok := vertexNames[vertex]; ok {
		return r
	}
	r := strings.Title(petname.Adjective()) + strings.Title(petname.Name())
	vertexNames[vertex] = r
	return r
}
