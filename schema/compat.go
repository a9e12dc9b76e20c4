package schema

// IsWideningAllowed reports whether changing a column from src to dst is a
// safe widening: every value written under src remains readable as dst.
// Only primitive transitions are considered; nested types never widen.
func IsWideningAllowed(src, dst Type) bool {
	if src.IsNested() || dst.IsNested() {
		return false
	}
	sp, ok := src.(Primitive)
	if !ok {
		return false
	}
	dp, ok := dst.(Primitive)
	if !ok {
		return false
	}
	if sp == dp {
		return true
	}
	switch sp.K {
	case KindInt:
		return dp.K == KindLong || dp.K == KindFloat || dp.K == KindDouble ||
			dp.K == KindString || dp.K == KindDecimal
	case KindLong:
		return dp.K == KindFloat || dp.K == KindDouble ||
			dp.K == KindString || dp.K == KindDecimal
	case KindFloat:
		return dp.K == KindDouble || dp.K == KindString || dp.K == KindDecimal
	case KindDouble:
		return dp.K == KindString || dp.K == KindDecimal
	case KindDecimal:
		if dp.K == KindString {
			return true
		}
		// wider precision only, scale is fixed
		return dp.K == KindDecimal && dp.Scale == sp.Scale && dp.Precision >= sp.Precision
	case KindString:
		return dp.K == KindDecimal || dp.K == KindDate
	case KindDate:
		return dp.K == KindString
	default:
		return false
	}
}
