package simplecache

import "fmt"

// ContractError reports a caller-side misuse of the cache API, such as an
// empty or unframeable key or a nil backend. It is returned immediately and
// never downgraded to a miss; every other failure class (unreachable
// backend, protocol desync, undecodable payload) is contained instead.
type ContractError struct {
	Call   string // entry point that detected the misuse
	Reason string
	Detail string // offending input, if printable
}

func (e *ContractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("simplecache: %s: %s: %q", e.Call, e.Reason, e.Detail)
	}
	return fmt.Sprintf("simplecache: %s: %s", e.Call, e.Reason)
}
