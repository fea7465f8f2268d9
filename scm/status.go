package scm

import (
	"encoding/json"
	"fmt"

	"github.com/isgasho/eden/codec"
)

// Status is the result of comparing two revisions' file states: seven lists
// of repository-relative file names. Like copy maps, file names may contain
// arbitrary bytes.
type Status struct {
	Modified []string
	Added    []string
	Removed  []string
	Deleted  []string
	Unknown  []string
	Ignored  []string
	Clean    []string
}

const statusLists = 7

// StatusCodec serializes Status as a JSON array of exactly seven arrays of
// base64-encoded file names. The fixed arity doubles as a shape check: any
// other layout is rejected at Decode. Lists come back empty, never nil.
type StatusCodec struct{}

var _ codec.Codec[Status] = StatusCodec{}

func (StatusCodec) Encode(v Status) ([]byte, error) {
	lists := [statusLists][]string{
		v.Modified, v.Added, v.Removed, v.Deleted, v.Unknown, v.Ignored, v.Clean,
	}
	enc := make([][]string, statusLists)
	for i, files := range lists {
		enc[i] = make([]string, len(files))
		for j, f := range files {
			enc[i][j] = b64(f)
		}
	}
	return json.Marshal(enc)
}

func (StatusCodec) Decode(b []byte) (Status, error) {
	var enc [][]string
	if err := json.Unmarshal(b, &enc); err != nil {
		return Status{}, err
	}
	if len(enc) != statusLists {
		return Status{}, fmt.Errorf("scm: status payload has %d lists, want %d", len(enc), statusLists)
	}
	var dec [statusLists][]string
	for i, files := range enc {
		dec[i] = make([]string, len(files))
		for j, f := range files {
			name, err := unb64(f)
			if err != nil {
				return Status{}, err
			}
			dec[i][j] = name
		}
	}
	return Status{
		Modified: dec[0],
		Added:    dec[1],
		Removed:  dec[2],
		Deleted:  dec[3],
		Unknown:  dec[4],
		Ignored:  dec[5],
		Clean:    dec[6],
	}, nil
}
