package tetris

import "fmt"

// Name identifies one of the seven standard pieces.
type Name string

const (
	I Name = "I"
	O Name = "O"
	L Name = "L"
	J Name = "J"
	T Name = "T"
	S Name = "S"
	Z Name = "Z"
)

// State is one rotation of a piece: an N×N occupancy grid indexed [row][col].
type State [][]bool

// Size returns the grid dimension N.
func (s State) Size() int {
	return len(s)
}

// Filled reports whether sub-cell (r, c) is occupied. Out-of-grid
// positions are empty.
func (s State) Filled(r, c int) bool {
	if r < 0 || r >= len(s) || c < 0 || c >= len(s[r]) {
		return false
	}
	return s[r][c]
}

// Clone returns a deep copy of the grid.
func (s State) Clone() State {
	out := make(State, len(s))
	for r, row := range s {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

const (
	xx = true
	__ = false
)

// names fixes the spawn order used by the random generator.
var names = []Name{I, O, L, J, T, S, Z}

// shapes holds the rotation states of every piece in clockwise order.
// Rotation 0 is the spawn orientation.
var shapes = map[Name][]State{
	I: {
		{
			{__, __, __, __},
			{xx, xx, xx, xx},
			{__, __, __, __},
			{__, __, __, __},
		},
		{
			{__, __, xx, __},
			{__, __, xx, __},
			{__, __, xx, __},
			{__, __, xx, __},
		},
		{
			{__, __, __, __},
			{__, __, __, __},
			{xx, xx, xx, xx},
			{__, __, __, __},
		},
		{
			{__, xx, __, __},
			{__, xx, __, __},
			{__, xx, __, __},
			{__, xx, __, __},
		},
	},
	O: {
		{
			{xx, xx},
			{xx, xx},
		},
	},
	L: {
		{
			{__, __, xx},
			{xx, xx, xx},
			{__, __, __},
		},
		{
			{__, xx, __},
			{__, xx, __},
			{__, xx, xx},
		},
		{
			{__, __, __},
			{xx, xx, xx},
			{xx, __, __},
		},
		{
			{xx, xx, __},
			{__, xx, __},
			{__, xx, __},
		},
	},
	J: {
		{
			{xx, __, __},
			{xx, xx, xx},
			{__, __, __},
		},
		{
			{__, xx, xx},
			{__, xx, __},
			{__, xx, __},
		},
		{
			{__, __, __},
			{xx, xx, xx},
			{__, __, xx},
		},
		{
			{__, xx, __},
			{__, xx, __},
			{xx, xx, __},
		},
	},
	T: {
		{
			{__, xx, __},
			{xx, xx, xx},
			{__, __, __},
		},
		{
			{__, xx, __},
			{__, xx, xx},
			{__, xx, __},
		},
		{
			{__, __, __},
			{xx, xx, xx},
			{__, xx, __},
		},
		{
			{__, xx, __},
			{xx, xx, __},
			{__, xx, __},
		},
	},
	S: {
		{
			{__, xx, xx},
			{xx, xx, __},
			{__, __, __},
		},
		{
			{__, xx, __},
			{__, xx, xx},
			{__, __, xx},
		},
		{
			{__, __, __},
			{__, xx, xx},
			{xx, xx, __},
		},
		{
			{xx, __, __},
			{xx, xx, __},
			{__, xx, __},
		},
	},
	Z: {
		{
			{xx, xx, __},
			{__, xx, xx},
			{__, __, __},
		},
		{
			{__, __, xx},
			{__, xx, xx},
			{__, xx, __},
		},
		{
			{__, __, __},
			{xx, xx, __},
			{__, xx, xx},
		},
		{
			{__, xx, __},
			{xx, xx, __},
			{xx, __, __},
		},
	},
}

// Names returns all piece names in spawn-table order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// States returns a copy of the rotation states for a piece.
// Panics for an undefined name.
func States(name Name) []State {
	states := lookup(name)
	out := make([]State, len(states))
	for i, st := range states {
		out[i] = st.Clone()
	}
	return out
}

// lookup returns the shared rotation table for a piece. Callers inside the
// package must not modify it.
func lookup(name Name) []State {
	states, ok := shapes[name]
	if !ok {
		panic(fmt.Sprintf("tetris: unknown piece %q", name))
	}
	return states
}
