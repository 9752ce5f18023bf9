package value

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCoerce(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		declared SQLType
		literal  Literal
		want     Value
		wantErr  error
	}{
		"integer into integer": {
			declared: SQLTypeInteger,
			literal:  IntegerLiteral(1),
			want:     Integer(1),
		},
		"negative integer": {
			declared: SQLTypeInteger,
			literal:  IntegerLiteral(-42),
			want:     Integer(-42),
		},
		"integer overflow": {
			declared: SQLTypeInteger,
			literal:  Literal{Kind: LiteralInteger, Token: "9223372036854775808"},
			wantErr:  ErrLiteralNotSupported,
		},
		"float into integer is not truncated": {
			declared: SQLTypeInteger,
			literal:  FloatLiteral(0.11),
			wantErr:  ErrLiteralNotSupported,
		},
		"whole float into integer": {
			declared: SQLTypeInteger,
			literal:  FloatLiteral(1),
			wantErr:  ErrLiteralNotSupported,
		},
		"float token without a fraction into integer": {
			declared: SQLTypeInteger,
			literal:  Literal{Kind: LiteralFloat, Token: "5"},
			wantErr:  ErrLiteralNotSupported,
		},
		"integer into float": {
			declared: SQLTypeFloat,
			literal:  IntegerLiteral(3),
			want:     Float(3),
		},
		"largest exact integer into float": {
			declared: SQLTypeFloat,
			literal:  IntegerLiteral(1 << 53),
			want:     Float(1 << 53),
		},
		"integer that would be rounded into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralInteger, Token: "9007199254740993"},
			wantErr:  ErrLiteralNotSupported,
		},
		"max int64 into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralInteger, Token: "9223372036854775807"},
			wantErr:  ErrLiteralNotSupported,
		},
		"integer overflow into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralInteger, Token: "99999999999999999999"},
			wantErr:  ErrLiteralNotSupported,
		},
		"NaN into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralFloat, Token: "NaN"},
			wantErr:  ErrLiteralNotSupported,
		},
		"infinity into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralFloat, Token: "Inf"},
			wantErr:  ErrLiteralNotSupported,
		},
		"negative infinity into float": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralFloat, Token: "-infinity"},
			wantErr:  ErrLiteralNotSupported,
		},
		"float out of range": {
			declared: SQLTypeFloat,
			literal:  Literal{Kind: LiteralFloat, Token: "1e400"},
			wantErr:  ErrLiteralNotSupported,
		},
		"float into float": {
			declared: SQLTypeFloat,
			literal:  FloatLiteral(2.5),
			want:     Float(2.5),
		},
		"string into text": {
			declared: SQLTypeText,
			literal:  StringLiteral("hello"),
			want:     Text("hello"),
		},
		"integer into text": {
			declared: SQLTypeText,
			literal:  IntegerLiteral(7),
			wantErr:  ErrSQLTypeNotSupported,
		},
		"boolean into boolean": {
			declared: SQLTypeBoolean,
			literal:  BooleanLiteral(true),
			want:     Boolean(true),
		},
		"integer into boolean": {
			declared: SQLTypeBoolean,
			literal:  IntegerLiteral(0),
			wantErr:  ErrSQLTypeNotSupported,
		},
		"null into any supported type": {
			declared: SQLTypeText,
			literal:  NullLiteral(),
			want:     Null(),
		},
		"declared type outside the domain": {
			declared: SQLTypeDate,
			literal:  StringLiteral("2024-01-01"),
			wantErr:  ErrSQLTypeNotSupported,
		},
		"blob literal": {
			declared: SQLTypeText,
			literal:  Literal{Kind: LiteralBlob, Token: "x'00'"},
			wantErr:  ErrLiteralNotSupported,
		},
		"placeholder literal wins over unsupported type": {
			declared: SQLTypeDate,
			literal:  Literal{Kind: LiteralPlaceholder, Token: "?"},
			wantErr:  ErrLiteralNotSupported,
		},
		"unknown literal kind": {
			declared: SQLTypeInteger,
			literal:  Literal{Token: "??"},
			wantErr:  ErrLiteralNotSupported,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			got, err := Coerce(tc.declared, tc.literal)
			if tc.wantErr != nil {
				req.Error(err)
				req.True(errors.Is(err, tc.wantErr), "got %v", err)

				var valueErr *Error
				req.True(errors.As(err, &valueErr))
				return
			}

			req.NoError(err)
			req.Equal(tc.want, got)
		})
	}
}

func TestCoerce_errorKindsAreDistinct(t *testing.T) {
	req := require.New(t)

	_, err := Coerce(SQLTypeInteger, Literal{Kind: LiteralCurrentTimestamp, Token: "CURRENT_TIMESTAMP"})
	req.True(errors.Is(err, ErrLiteralNotSupported))
	req.False(errors.Is(err, ErrSQLTypeNotSupported))

	_, err = Coerce(SQLTypeBoolean, IntegerLiteral(0))
	req.True(errors.Is(err, ErrSQLTypeNotSupported))
	req.False(errors.Is(err, ErrLiteralNotSupported))
	req.Equal("sql type not supported: BOOLEAN from integer(0)", err.Error())
}
