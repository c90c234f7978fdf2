package component

// Position is an integer grid coordinate. Any pair is valid.
type Position struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
}

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }

// CurrentPosition is where an entity is now. Only the movement system writes it.
type CurrentPosition struct {
	Position
}

// TargetPosition is where an entity is heading. Set once at spawn.
type TargetPosition struct {
	Position
}

// Speed is the per-axis step magnitude applied each tick.
type Speed struct {
	X uint64 `yaml:"x"`
	Y uint64 `yaml:"y"`
}

// Name is a human readable label used in logs and reports.
type Name string
