package proofsearch

// cacheState is the three-valued memoization entry recommended by the
// design notes in place of overloading a boolean with a sentinel: a goal
// under active recursion is pending, distinct from one already settled
// true or false.
type cacheState int

const (
	pending cacheState = iota
	provable
	refutable
)
