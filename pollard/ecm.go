package pollard

import (
	"time"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// ecmTimeout bounds how long FactorizeECMUint64 waits for lattigo's own
// ring.FactorizeECM, which loops internally over an unbounded sequence of
// random curves and never returns for a prime input. The call is left
// running in its goroutine past the timeout (it is a pure CPU loop with no
// observable side effect) rather than interrupted, since lattigo does not
// expose a cancellation hook.
const ecmTimeout = 500 * time.Millisecond

// FactorizeECMUint64 tries lattigo's own 64-bit elliptic-curve-method
// factorizer as a cheap pre-pass before the arbitrary-precision engines
// run (SPEC_FULL §5's screening step 4.5). It returns ok=false if n does
// not admit a 64-bit factor attempt, if no factor surfaces within timeout
// (ecmTimeout when timeout <= 0), or if the only gcd lattigo found was n
// itself.
func FactorizeECMUint64(n uint64, timeout time.Duration) (factor uint64, ok bool) {
	if n < 4 {
		return 0, false
	}
	if timeout <= 0 {
		timeout = ecmTimeout
	}
	result := make(chan uint64, 1)
	go func() {
		result <- ring.FactorizeECM(n)
	}()
	select {
	case g := <-result:
		if g > 1 && g < n {
			return g, true
		}
		return 0, false
	case <-time.After(timeout):
		return 0, false
	}
}
