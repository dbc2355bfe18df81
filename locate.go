package schematic

const (
	filler = '.'
	gear   = '*'
)

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsSpecial reports whether r is neither a digit nor the filler character.
func IsSpecial(r rune) bool {
	return !IsDigit(r) && r != filler
}

// IsGear reports whether r is the gear marker.
func IsGear(r rune) bool {
	return r == gear
}

func classify(r rune) SymbolKind {
	if IsGear(r) {
		return KindGear
	}
	return KindSpecial
}

// FindSpecialSymbols returns every special-symbol cell in row-major order.
func (s *Schematic) FindSpecialSymbols() []Symbol {
	return s.findSymbols(IsSpecial)
}

// FindGears returns every gear cell in row-major order. Each gear is also
// reported by FindSpecialSymbols.
func (s *Schematic) FindGears() []Symbol {
	return s.findSymbols(IsGear)
}

func (s *Schematic) findSymbols(match func(rune) bool) []Symbol {
	var syms []Symbol
	s.scan(func(r, c int, ch rune) {
		if !match(ch) {
			return
		}
		syms = append(syms, Symbol{
			Coordinate: Coordinate{Row: r, Col: c},
			Char:       ch,
			Kind:       classify(ch),
		})
	})
	return syms
}
