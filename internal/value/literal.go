package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LiteralKind is the syntactic form a literal had in the statement text.
type LiteralKind int

const (
	LiteralUnknown LiteralKind = iota
	LiteralInteger
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralBlob
	LiteralPlaceholder
	LiteralCurrentTimestamp
)

var literalKindNames = map[LiteralKind]string{
	LiteralInteger:          "integer",
	LiteralFloat:            "float",
	LiteralString:           "string",
	LiteralBoolean:          "boolean",
	LiteralNull:             "null",
	LiteralBlob:             "blob",
	LiteralPlaceholder:      "placeholder",
	LiteralCurrentTimestamp: "current_timestamp",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText satisfies encoding.TextMarshaler.
func (k LiteralKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler. Unrecognized names decode to
// LiteralUnknown so that coercion, not decoding, reports them.
func (k *LiteralKind) UnmarshalText(text []byte) error {
	*k = LiteralUnknown
	for kind, name := range literalKindNames {
		if name == string(text) {
			*k = kind
			break
		}
	}
	return nil
}

// Literal is an untyped value as written in a statement. Token holds the source text of the
// literal, without quotes for strings.
type Literal struct {
	Kind  LiteralKind `json:"kind"`
	Token string      `json:"token"`
}

func IntegerLiteral(v int64) Literal {
	return Literal{Kind: LiteralInteger, Token: strconv.FormatInt(v, 10)}
}

func FloatLiteral(v float64) Literal {
	return Literal{Kind: LiteralFloat, Token: strconv.FormatFloat(v, 'g', -1, 64)}
}

func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Token: s}
}

func BooleanLiteral(b bool) Literal {
	return Literal{Kind: LiteralBoolean, Token: strconv.FormatBool(b)}
}

func NullLiteral() Literal {
	return Literal{Kind: LiteralNull, Token: "NULL"}
}

func (l Literal) String() string {
	if l.Kind == LiteralString {
		return strconv.Quote(l.Token)
	}
	return fmt.Sprintf("%s(%s)", l.Kind, l.Token)
}

// UnmarshalJSON accepts both the object form {"kind":"integer","token":"1"} and bare JSON
// scalars, which is how most clients write VALUES lists.
func (l *Literal) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = NullLiteral()
	case bool:
		*l = BooleanLiteral(v)
	case string:
		*l = StringLiteral(v)
	case float64:
		// keep the original token so large integers are not rounded through float64
		token := string(data)
		if _, err := strconv.ParseInt(token, 10, 64); err == nil {
			*l = Literal{Kind: LiteralInteger, Token: token}
		} else {
			*l = Literal{Kind: LiteralFloat, Token: token}
		}
	case map[string]interface{}:
		type plain Literal
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*l = Literal(p)
	default:
		return fmt.Errorf("invalid literal: %s", string(data))
	}
	return nil
}
