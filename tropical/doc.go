// Package tropical implements the min-plus ("tropical") semiring over
// non-negative arbitrary-precision integers extended with +∞.
//
// What:
//
//   - Value is either Finite(w) for a non-negative *big.Int w, or Infinite.
//   - Infinite is strictly greater than every finite value.
//   - Add is ordinary addition (anything + Infinite = Infinite).
//   - Min is the semiring "addition"; MinOf folds with identity Infinite.
//
// Why:
//
//   - Shortest-path distances accumulate without overflow.
//   - "Unreachable" is a first-class value rather than a magic number such
//     as math.MaxInt64, so it can never degrade into a large finite cost.
//
// The zero Value is Infinite. A map lookup that misses therefore yields
// "unknown / unreachable", never a finite zero.
//
// Values are immutable: constructors copy their argument and accessors
// return copies, so a Value may be shared freely between goroutines.
package tropical
