// Package ferrors collects the small closed error taxonomy shared by every
// engine in the factorization module. Callers compare against these
// sentinels with errors.Is; call sites wrap them with fmt.Errorf("...: %w", ...)
// for context the way the rest of the module does.
package ferrors

import "errors"

var (
	// ErrInvalidInput covers n < 2, an even modulus where Montgomery form
	// requires odd, a non-prime modulus where Tonelli-Shanks or the
	// Legendre symbol require prime, a non-positive root degree, and a
	// negative radicand with an even root degree.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoInverse is returned when a modular inverse is requested for a
	// value that shares a nontrivial factor with the modulus.
	ErrNoInverse = errors.New("no modular inverse")

	// ErrNoSquareRoot is returned when Tonelli-Shanks is asked for the
	// square root of a quadratic non-residue.
	ErrNoSquareRoot = errors.New("no square root")

	// ErrCapacityExceeded is returned when a requested sieve bound would
	// require an array longer than this platform can address.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
