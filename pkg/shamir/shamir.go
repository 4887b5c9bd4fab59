// Package shamir implements vectorised Shamir secret sharing over the
// prime field defined by package field (p = 2^61 - 1).
//
// Unlike byte-oriented Shamir implementations that split a single secret
// string, this package shares a whole vector of field elements at once:
// each component of the secret gets its own independent random polynomial,
// all evaluated at the same party abscissas, so a single Share carries one
// evaluation per vector component.
package shamir

import (
	"fmt"
	"io"

	"github.com/vaultmesh/secureagg/pkg/field"
)

// Share is party (Index)'s evaluation of every per-component polynomial,
// i.e. one row of the N x L share grid described in the data model. Party
// indices run 1..N; 0 is reserved for the secret-recovery abscissa.
type Share struct {
	Index  int
	Values []field.Element
}

// Validate checks structural invariants of a share in isolation.
func (s *Share) Validate() error {
	if s.Index < 1 {
		return fmt.Errorf("shamir: share index must be >= 1, got %d", s.Index)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("shamir: share has no components")
	}
	return nil
}

// ShareVector splits secret into total shares such that any threshold of
// them reconstruct it exactly. For each component it builds a degree
// threshold-1 polynomial whose constant term is that component and whose
// remaining coefficients are drawn uniformly from src, then evaluates the
// polynomial at x = 1..total using Horner's method.
func ShareVector(secret []field.Element, threshold, total int, src io.Reader) ([]*Share, error) {
	if threshold < 1 || threshold > total {
		return nil, fmt.Errorf("shamir: threshold %d must be in [1, %d]", threshold, total)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("shamir: secret vector must be non-empty")
	}

	l := len(secret)
	extraCoeffs := threshold - 1

	// randomCoeffs[k*extraCoeffs+(d-1)] is the degree-d coefficient (d >= 1)
	// of component k's polynomial. Drawn as one batch to minimise reads from
	// src.
	var randomCoeffs []field.Element
	if extraCoeffs > 0 {
		var err error
		randomCoeffs, err = field.SampleVector(l*extraCoeffs, src)
		if err != nil {
			return nil, fmt.Errorf("shamir: drawing polynomial coefficients: %w", err)
		}
	}

	coeffAt := func(component, degree int) field.Element {
		// degree 0 coefficient is the secret itself.
		if degree == 0 {
			return secret[component]
		}
		return randomCoeffs[component*extraCoeffs+(degree-1)]
	}

	shares := make([]*Share, total)
	for partyIdx := 1; partyIdx <= total; partyIdx++ {
		x := field.Reduce(uint64(partyIdx))
		values := make([]field.Element, l)
		for k := 0; k < l; k++ {
			// Horner's method, highest degree first.
			acc := coeffAt(k, extraCoeffs)
			for d := extraCoeffs - 1; d >= 0; d-- {
				acc = field.Add(field.Mul(acc, x), coeffAt(k, d))
			}
			values[k] = acc
		}
		shares[partyIdx-1] = &Share{Index: partyIdx, Values: values}
	}
	return shares, nil
}

// Reconstruct recovers the secret vector from at least threshold shares via
// Lagrange interpolation at x = 0. It is an error to supply fewer than
// threshold shares or shares of inconsistent length; supplying exactly
// threshold-1 shares is not flagged as an error by the caller's use of a
// smaller threshold, but is undefined with respect to recovering the
// correct secret (per the Shamir security guarantee, it leaks nothing).
func Reconstruct(threshold int, shares []*Share) ([]field.Element, error) {
	if len(shares) < threshold {
		return nil, fmt.Errorf("shamir: need at least %d shares, got %d", threshold, len(shares))
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("shamir: no shares provided")
	}
	l := len(shares[0].Values)
	for _, s := range shares {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if len(s.Values) != l {
			return nil, fmt.Errorf("shamir: inconsistent vector length: got %d, want %d", len(s.Values), l)
		}
	}

	coeffs, err := lagrangeCoefficientsAtZero(shares)
	if err != nil {
		return nil, err
	}

	secret := make([]field.Element, l)
	for i, s := range shares {
		for k := 0; k < l; k++ {
			secret[k] = field.Add(secret[k], field.Mul(s.Values[k], coeffs[i]))
		}
	}
	return secret, nil
}

// lagrangeCoefficientsAtZero computes L_i(0) = Π_{j != i} (-x_j) / (x_i - x_j)
// for each share i, independent of the secret's component values so it can
// be reused across all L components of a single reconstruction.
func lagrangeCoefficientsAtZero(shares []*Share) ([]field.Element, error) {
	xs := make([]field.Element, len(shares))
	for i, s := range shares {
		xs[i] = field.Reduce(uint64(s.Index))
	}

	coeffs := make([]field.Element, len(shares))
	for i := range shares {
		numerator := field.One
		denominator := field.One
		for j := range shares {
			if i == j {
				continue
			}
			if xs[i] == xs[j] {
				return nil, fmt.Errorf("shamir: duplicate share index %d", shares[i].Index)
			}
			numerator = field.Mul(numerator, field.Sub(field.Zero, xs[j]))
			denominator = field.Mul(denominator, field.Sub(xs[i], xs[j]))
		}
		coeffs[i] = field.Mul(numerator, field.Inverse(denominator))
	}
	return coeffs, nil
}
