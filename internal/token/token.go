package token

import "fmt"

type Kind int

const (
	Unknown Kind = iota
	EOF

	Ident  // Identifier
	Number // Numeric literal
	String // String literal

	// Keywords
	Let
	If
	Else
	Fun
	Return
	While
	For
	In
	True
	False
	And
	Or

	// Type keywords
	NumberType // number
	StringType // string
	BoolType   // bool

	// Operators
	Assign // =

	Plus  // +
	Minus // -
	Star  // *
	Slash // /

	Bang      // !
	BangEq    // !=
	Eq        // ==
	Less      // <
	LessEq    // <=
	Greater   // >
	GreaterEq // >=

	// Symbols
	Comma     // ,
	Colon     // :
	Semicolon // ;
	DotDot    // ..

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
)

// Position is a 0-indexed location in the source text. Columns count
// grapheme clusters, not bytes.
type Position struct {
	Line   int
	Column int
}

// String renders the position 1-indexed, as shown to users.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Token is a lexeme tagged with its kind and source position. Lexeme
// is the raw source substring the token was matched from, so joining
// lexemes back together reproduces the source modulo whitespace.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Let:
		return "Let"
	case If:
		return "If"
	case Else:
		return "Else"
	case Fun:
		return "Fun"
	case Return:
		return "Return"
	case While:
		return "While"
	case For:
		return "For"
	case In:
		return "In"
	case True:
		return "True"
	case False:
		return "False"
	case And:
		return "And"
	case Or:
		return "Or"
	case NumberType:
		return "NumberType"
	case StringType:
		return "StringType"
	case BoolType:
		return "BoolType"
	case Assign:
		return "Assign"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Bang:
		return "Bang"
	case BangEq:
		return "BangEq"
	case Eq:
		return "Eq"
	case Less:
		return "Less"
	case LessEq:
		return "LessEq"
	case Greater:
		return "Greater"
	case GreaterEq:
		return "GreaterEq"
	case Comma:
		return "Comma"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case DotDot:
		return "DotDot"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spelling is how a kind is written in source, quoted for use in
// diagnostics. Kinds without a fixed spelling fall back to the kind
// name.
func (k Kind) Spelling() string {
	switch k {
	case Let:
		return "'let'"
	case If:
		return "'if'"
	case Else:
		return "'else'"
	case Fun:
		return "'fun'"
	case Return:
		return "'return'"
	case While:
		return "'while'"
	case For:
		return "'for'"
	case In:
		return "'in'"
	case Assign:
		return "'='"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Semicolon:
		return "';'"
	case DotDot:
		return "'..'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	default:
		return k.String()
	}
}

var keywords = map[string]Kind{
	"let":    Let,
	"if":     If,
	"else":   Else,
	"fun":    Fun,
	"return": Return,
	"while":  While,
	"for":    For,
	"in":     In,
	"true":   True,
	"false":  False,
	"and":    And,
	"or":     Or,

	"number": NumberType,
	"string": StringType,
	"bool":   BoolType,
}

// LookupIdent maps an identifier run to its keyword kind, or Ident.
func LookupIdent(lit string) Kind {
	if kind, ok := keywords[lit]; ok {
		return kind
	}
	return Ident
}
