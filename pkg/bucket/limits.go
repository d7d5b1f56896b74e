package bucket

// Hardcoded implementation limits.
//
// These exist primarily to keep shift/mask arithmetic safely away from
// overflow boundaries. Limit violations are programming errors: callers
// that exceed them get an explicit panic from nextPowerOfTwo, not a
// dedicated sentinel, since capacities this large are never reachable
// except by caller bugs.
const (
	// maxCapacity is the largest power-of-two capacity nextPowerOfTwo will
	// round up to; it panics rather than returning a capacity beyond this.
	// 2^40 slots is already far beyond any real workload, and every
	// container in this package, including a Deque's doubling on growth,
	// allocates through nextPowerOfTwo, so this ceiling is enforced
	// everywhere a capacity is chosen.
	maxCapacity = uint64(1) << 40
)
