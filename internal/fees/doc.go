// Package fees computes late fees for returned loans.
//
// A fee is produced by threading a running amount through a fixed sequence of
// stages:
//
//	base → afterExemption → afterDiscount → final
//
// base is always present; the other three are included only when their rule
// is enabled, and are skipped (not replaced by no-ops) otherwise. The order is
// the historical rule order of the library system and cannot be changed by
// callers: discounts and surcharges do not commute, and the holiday exemption
// only zeroes what was computed before it.
//
// The engine holds no state between calls. An Engine may be shared by any
// number of goroutines.
package fees
