package script

import (
	"time"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/handegar/tas2505/regs"
)

// Program is a parsed register script.
type Program struct {
	Name       string
	Statements []*Statement `( @@ | EOL )*`
}

// Statement is one command. Exactly one of the fields after Pos is set.
type Statement struct {
	Pos lexer.Position

	Reset  bool    `  @"reset"`
	Page   *string `| "page" @Word`
	Write  *Write  `| "write" @@`
	Set    *Set    `| "set" @@`
	Update *Update `| "update" @@`
	Delay  *string `| "delay" @Duration`
	Read   *RegRef `| "read" @@`
	Expect *Expect `| "expect" @@`

	// Filled in after parsing
	Text     string
	page     uint8
	duration time.Duration
}

// RegRef names a register by header name or page:offset.
type RegRef struct {
	Name   string  `@Word`
	Offset *string `( Colon @Word )?`

	reg regs.Reg
}

type Write struct {
	Reg   *RegRef `@@`
	Value string  `@Word`

	value uint8
}

type Set struct {
	Field string `@Word`
	Value string `@Word`

	field regs.Field
	value uint8
}

type Update struct {
	Reg   *RegRef `@@`
	Mask  string  `@Word`
	Value string  `@Word`

	mask, value uint8
}

type Expect struct {
	Reg   *RegRef `@@`
	Mask  string  `@Word`
	Value string  `@Word`

	mask, value uint8
}
