package value

import (
	"math"
	"strconv"
)

// Coerce converts a literal into a Value of the declared column type. It never widens or
// truncates silently: every combination outside the table below is rejected.
//
//	INTEGER  <- integer
//	FLOAT    <- integer exactly representable as a float64, finite float
//	TEXT     <- string
//	BOOLEAN  <- boolean
//	any      <- null
//
// Literal forms the value domain has no representation for, and numeric tokens that do not fit
// the declared type, fail with ErrLiteralNotSupported. Declared types outside the domain, and unsupported
// pairs, fail with ErrSQLTypeNotSupported.
func Coerce(declared SQLType, lit Literal) (Value, error) {
	switch lit.Kind {
	case LiteralInteger, LiteralFloat, LiteralString, LiteralBoolean, LiteralNull:
	default:
		return Value{}, newError(ErrLiteralNotSupported, "%s", lit)
	}

	if !declared.Supported() {
		return Value{}, newError(ErrSQLTypeNotSupported, "%s", declared)
	}

	if lit.Kind == LiteralNull {
		return Null(), nil
	}

	switch declared {
	case SQLTypeInteger:
		switch lit.Kind {
		case LiteralInteger:
			i, err := strconv.ParseInt(lit.Token, 10, 64)
			if err != nil {
				return Value{}, newError(ErrLiteralNotSupported, "%s does not fit %s", lit, declared)
			}
			return Integer(i), nil
		case LiteralFloat:
			// fixed-point literals never land in an integer column, whatever their token
			return Value{}, newError(ErrLiteralNotSupported, "%s does not fit %s", lit, declared)
		}
	case SQLTypeFloat:
		switch lit.Kind {
		case LiteralInteger:
			f, ok := exactFloat(lit.Token)
			if !ok {
				return Value{}, newError(ErrLiteralNotSupported, "%s does not fit %s", lit, declared)
			}
			return Float(f), nil
		case LiteralFloat:
			f, err := strconv.ParseFloat(lit.Token, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return Value{}, newError(ErrLiteralNotSupported, "%s does not fit %s", lit, declared)
			}
			return Float(f), nil
		}
	case SQLTypeText:
		if lit.Kind == LiteralString {
			return Text(lit.Token), nil
		}
	case SQLTypeBoolean:
		if lit.Kind == LiteralBoolean {
			b, err := strconv.ParseBool(lit.Token)
			if err != nil {
				return Value{}, newError(ErrLiteralNotSupported, "%s does not fit %s", lit, declared)
			}
			return Boolean(b), nil
		}
	}

	return Value{}, newError(ErrSQLTypeNotSupported, "%s from %s", declared, lit)
}

// exactFloat converts an integer token to a float64 only when no precision is lost.
func exactFloat(token string) (float64, bool) {
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, false
	}
	f := float64(i)
	if strconv.FormatFloat(f, 'f', -1, 64) != strconv.FormatInt(i, 10) {
		return 0, false
	}
	return f, true
}
