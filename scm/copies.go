package scm

import (
	"encoding/base64"
	"encoding/json"

	"github.com/isgasho/eden/codec"
)

// PathCopies maps destination path to source path for files copied or
// renamed between two revisions. Paths are repository-relative and may
// contain arbitrary bytes; they are not guaranteed to be valid UTF-8.
type PathCopies map[string]string

// CopiesCodec serializes PathCopies as a JSON object. Because JSON strings
// cannot carry arbitrary bytes, every path is base64-encoded individually
// before entering the envelope and decoded back out at the same
// granularity.
type CopiesCodec struct{}

var _ codec.Codec[PathCopies] = CopiesCodec{}

func (CopiesCodec) Encode(v PathCopies) ([]byte, error) {
	enc := make(map[string]string, len(v))
	for dst, src := range v {
		enc[b64(dst)] = b64(src)
	}
	return json.Marshal(enc)
}

func (CopiesCodec) Decode(b []byte) (PathCopies, error) {
	// map[string]string makes json reject non-object payloads and
	// non-string members, so shape violations fail here rather than
	// leaking coerced values.
	var enc map[string]string
	if err := json.Unmarshal(b, &enc); err != nil {
		return nil, err
	}
	out := make(PathCopies, len(enc))
	for dst, src := range enc {
		d, err := unb64(dst)
		if err != nil {
			return nil, err
		}
		s, err := unb64(src)
		if err != nil {
			return nil, err
		}
		out[d] = s
	}
	return out, nil
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func unb64(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
