package tile

// Symbol is a tagged variant: either a raw character code, or a domain
// symbol (an application-defined enum value, e.g. "player" or "rat") that
// the Tileset resolves through its own symbol table, falling back to a
// character glyph when the symbol has no dedicated tile.
type Symbol struct {
	isChar bool
	char   rune
	domain int32
}

// Char wraps a literal character code as a Symbol.
func Char(r rune) Symbol { return Symbol{isChar: true, char: r} }

// Domain wraps a domain-defined symbol ID as a Symbol.
func Domain(id int32) Symbol { return Symbol{isChar: false, domain: id} }

// IsChar reports whether the symbol is a literal character rather than a
// domain symbol.
func (s Symbol) IsChar() bool { return s.isChar }

// Rune returns the literal character, valid only when IsChar is true.
func (s Symbol) Rune() rune { return s.char }

// DomainID returns the domain symbol ID, valid only when IsChar is false.
func (s Symbol) DomainID() int32 { return s.domain }

// Cell is the unit of grid storage: a glyph/sprite selector plus the
// foreground and background colors it is painted with.
type Cell struct {
	Symbol Symbol
	FG, BG Color
}

// BlankCell is a space in white over black, used to fill newly-allocated
// or cleared grid storage. It is not the zero Cell value.
var BlankCell = Cell{Symbol: Char(' '), FG: White, BG: Black}
