package parser

import "github.com/ember-lang/emberc/internal/lexer"

// power is a binding power: higher binds tighter. Levels mirror
// spec §6.4 (there listed high-to-low as 1..15); here inverted so the
// precedence-climbing loop is a simple "power >= minPower" comparison.
type power int

const (
	powLowest power = iota
	powAssign       // `=`              (right-assoc)               level 15
	powPipeline     // `|>`                                         level 14
	// level 13 (`..` range) is pattern-only; see infixPower below.
	powOr       // `or`                                             level 12
	powAnd      // `and`                                            level 11
	powEquality // `==` `!=` `<` `<=` `>` `>=`                       level 10
	powBitOr    // `|`                                               level 9
	powBitXor   // `^`                                               level 8
	powBitAnd   // `&`                                               level 7
	powShift    // `<<` `>>`                                         level 6
	powSum      // `+` `-`                                           level 5
	powProduct  // `*` `/` `%`                                       level 4
	powPow      // `**`            (right-assoc)                     level 3
	powUnary    // `-` `not` `!`   (prefix)                          level 2
	powPostfix  // call / index / member                             level 1
)

// infixPower maps a token type to its binding power in infix
// position; tokens absent here are never infix operators.
var infixPower = map[lexer.TokenType]power{
	lexer.ASSIGN:   powAssign,
	lexer.PIPEGT:   powPipeline,
	lexer.OR:       powOr,
	lexer.AND:      powAnd,
	lexer.PIPE:     powBitOr,
	lexer.CARET:    powBitXor,
	lexer.AMP:      powBitAnd,
	lexer.SHL:      powShift,
	lexer.SHR:      powShift,
	lexer.EQ:       powEquality,
	lexer.NOT_EQ:   powEquality,
	lexer.LT:       powEquality,
	lexer.LE:       powEquality,
	lexer.GT:       powEquality,
	lexer.GE:       powEquality,
	lexer.PLUS:     powSum,
	lexer.PLUSPLUS: powSum,
	lexer.MINUS:    powSum,
	lexer.STAR:     powProduct,
	lexer.SLASH:    powProduct,
	lexer.PERCENT:  powProduct,
	lexer.STARSTAR: powPow,
	lexer.LPAREN:   powPostfix,
	lexer.LBRACKET: powPostfix,
	lexer.DOT:      powPostfix,
}

// rightAssoc holds the handful of operators that associate right
// rather than left (spec §6.4: `**` and `=`).
var rightAssoc = map[lexer.TokenType]bool{
	lexer.STARSTAR: true,
	lexer.ASSIGN:   true,
}
