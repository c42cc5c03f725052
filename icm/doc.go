// Package icm implements the Independent Chip Model: converting tournament
// chip stacks into prize-pool equity via the Malmuth-Harville
// finish-probability recursion, plus ICM-aware push/fold decisions built on
// top of the equity calculation.
//
// Every calculation is a pure function of its inputs. The recursion
// memoises on subsets of the field, which keeps cost near O(n^2 * 2^n) for
// n active players; MaxFieldSize bounds n so a single call stays
// interactive. Concurrent calls are safe because each calculation owns its
// memo table.
package icm
