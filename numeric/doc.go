// Package numeric converts the textual digit strings produced by the field
// transcoders into fixed-width integers and decimals.
//
// Every conversion trims surrounding spaces first. Text that is empty, holds
// anything other than an optional sign followed by digits (and, for
// decimals, a single point), or whose magnitude does not fit the requested
// Target fails with a conversion error naming the text and the target:
//
//	v, err := numeric.ParseInt(" 0042", numeric.Int16) // 42
//	_, err = numeric.ParseInt("40000", numeric.Int16)  // conversion error
//	d, err := numeric.ParseDecimal("-650.00")
//
// Narrow applies the same range rules to an already decoded int64.
package numeric
