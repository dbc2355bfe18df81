package schematic

// PartNumbers returns every number adjacent to at least one special symbol,
// each listed once even when several symbols touch it.
func (s *Schematic) PartNumbers() []Number {
	var all []Number
	for _, sym := range s.FindSpecialSymbols() {
		all = append(all, s.AdjacentNumbers(sym)...)
	}
	return Unique(all)
}

// SumPartNumbers returns the sum of PartNumbers values.
func (s *Schematic) SumPartNumbers() uint64 {
	var total uint64
	for _, n := range s.PartNumbers() {
		total += uint64(n.Value)
	}
	return total
}

// GearRatios returns one entry per gear that touches exactly two numbers.
func (s *Schematic) GearRatios() []GearRatio {
	var ratios []GearRatio
	for _, g := range s.FindGears() {
		parts, ok := s.TwoPartAdjacent(g)
		if !ok {
			continue
		}
		ratios = append(ratios, GearRatio{
			Gear:  g,
			Parts: parts,
			Ratio: uint64(parts[0].Value) * uint64(parts[1].Value),
		})
	}
	return ratios
}

// SumGearRatios returns the sum of GearRatios products.
func (s *Schematic) SumGearRatios() uint64 {
	var total uint64
	for _, g := range s.GearRatios() {
		total += g.Ratio
	}
	return total
}

// Analyze runs both aggregate queries and collects their details.
func (s *Schematic) Analyze() *Report {
	rep := &Report{
		Rows:        s.RowCount(),
		SymbolCount: len(s.FindSpecialSymbols()),
		GearCount:   len(s.FindGears()),
		Parts:       s.PartNumbers(),
		Gears:       s.GearRatios(),
	}
	for _, n := range rep.Parts {
		rep.PartSum += uint64(n.Value)
	}
	for _, g := range rep.Gears {
		rep.GearRatioSum += g.Ratio
	}
	return rep
}
