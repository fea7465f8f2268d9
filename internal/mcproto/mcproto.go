// Package mcproto frames the memcached text protocol subset the remote
// backend speaks: get, set, and their replies.
//
// Response framing carries no length prefix for the terminator, so replies
// are read one byte at a time until the delimiter appears. Only the value
// payload of a get hit, whose size is announced in the VALUE line, is read
// in bulk. The functions here operate on plain io.Reader/io.Writer so they
// can be exercised against byte buffers without a socket.
package mcproto

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrProtocol reports a malformed or unexpected response frame.
var ErrProtocol = errors.New("mcproto: malformed response")

// MaxValueSize caps the announced payload size of a get response. A peer
// declaring more than this is treated as a protocol error before any
// allocation or bulk read happens, so a hostile or buggy size field cannot
// stall the caller or balloon memory.
const MaxValueSize = 64 << 20

// MaxKeyLen matches the memcached server-side key limit.
const MaxKeyLen = 250

// ValidateKey rejects keys the text protocol cannot frame: empty keys, keys
// over MaxKeyLen, and keys containing whitespace or control bytes.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("mcproto: empty key")
	}
	if len(key) > MaxKeyLen {
		return fmt.Errorf("mcproto: key exceeds %d bytes", MaxKeyLen)
	}
	for i := 0; i < len(key); i++ {
		if key[i] <= ' ' || key[i] == 0x7f {
			return fmt.Errorf("mcproto: key contains whitespace or control byte at %d", i)
		}
	}
	return nil
}

// WriteGet sends `get <key>\r\n`.
func WriteGet(w io.Writer, key string) error {
	_, err := fmt.Fprintf(w, "get %s\r\n", key)
	return err
}

// WriteSet sends `set <key> 0 0 <len>\r\n<payload>\r\n`. The announced
// length and the payload length always agree because both come from value;
// a mismatch would desynchronize the peer's framing.
func WriteSet(w io.Writer, key string, value []byte) error {
	if _, err := fmt.Fprintf(w, "set %s 0 0 %d\r\n", key, len(value)); err != nil {
		return err
	}
	if _, err := w.Write(value); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}

// ReadGetResponse parses the reply to a get. It accumulates the meta line
// byte-by-byte up to the first '\r': `END` means the key is absent, and
// `VALUE <key> <flags> <size>` announces a payload of exactly size bytes,
// followed by a `\r\nEND\r\n` trailer which is consumed and discarded.
func ReadGetResponse(r io.Reader) ([]byte, bool, error) {
	meta, err := readUntil(r, "\r")
	if err != nil {
		return nil, false, err
	}
	if meta == "END" {
		return nil, false, nil
	}

	fields := strings.Fields(meta)
	if len(fields) != 4 || fields[0] != "VALUE" {
		return nil, false, fmt.Errorf("%w: meta line %q", ErrProtocol, meta)
	}
	size, err := strconv.Atoi(fields[3])
	if err != nil || size < 0 {
		return nil, false, fmt.Errorf("%w: size field %q", ErrProtocol, fields[3])
	}
	if size > MaxValueSize {
		return nil, false, fmt.Errorf("%w: announced size %d exceeds limit", ErrProtocol, size)
	}

	// The '\n' completing the meta line terminator.
	if _, err := readByte(r); err != nil {
		return nil, false, err
	}
	value := make([]byte, size)
	if _, err := io.ReadFull(r, value); err != nil {
		return nil, false, fmt.Errorf("%w: short payload: %v", ErrProtocol, err)
	}
	// Trailer: \r\nEND\r\n
	var trailer [7]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, false, fmt.Errorf("%w: short trailer: %v", ErrProtocol, err)
	}
	return value, true, nil
}

// ReadSetReply accumulates the reply token byte-by-byte until a bare '\r'
// or '\n'. Only `STORED` counts as success; any other token is a failed
// (but well-framed) write.
func ReadSetReply(r io.Reader) (bool, error) {
	reply, err := readUntil(r, "\r\n")
	if err != nil {
		return false, err
	}
	return reply == "STORED", nil
}

// readUntil reads single bytes until one of the delimiters appears; the
// delimiter itself is consumed and not returned.
func readUntil(r io.Reader, delims string) (string, error) {
	var sb strings.Builder
	for {
		c, err := readByte(r)
		if err != nil {
			return "", err
		}
		if strings.IndexByte(delims, c) >= 0 {
			return sb.String(), nil
		}
		sb.WriteByte(c)
	}
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
