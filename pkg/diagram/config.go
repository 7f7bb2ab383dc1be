package diagram

// Glyphs recognized by the scanner and assembler.
const (
	GlyphBox        = "│" // node box delimiter
	GlyphArrowLeft  = "◄"
	GlyphArrowRight = "►"
	GlyphArrowUp    = "▲"
	GlyphArrowDown  = "▼"
)

// DefaultTolerance is the column clustering tolerance in character widths.
// Two centers closer than this resolve to the same logical column.
const DefaultTolerance = 20.0

// Config tunes the heuristic surface of the engine. The zero value is usable
// and equivalent to [DefaultConfig].
type Config struct {
	// Tolerance is the clustering distance in character widths.
	// Zero or negative selects DefaultTolerance.
	Tolerance float64

	// TabWidth expands tabs to the next multiple of TabWidth before scanning
	// so columns match what an editor displays. Zero disables expansion.
	TabWidth int

	// Labels overrides the default label per node type. Missing or empty
	// entries fall back to DefaultLabel.
	Labels map[NodeType]string
}

// DefaultConfig returns the stock tolerance with no tab expansion or label overrides.
func DefaultConfig() Config {
	return Config{Tolerance: DefaultTolerance}
}

func (c Config) tolerance() float64 {
	if c.Tolerance <= 0 {
		return DefaultTolerance
	}
	return c.Tolerance
}

func (c Config) defaultLabel(t NodeType) string {
	if l := c.Labels[t]; l != "" {
		return l
	}
	return DefaultLabel(t)
}
