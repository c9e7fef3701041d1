package model

// World is the host-side grid model. The decision core only queries it and
// issues Move commands; pathfinding and unit registries live behind it.
//
// Absent answers are reported as (zero, false). Paths exclude the origin and
// include the destination; a nil path means unreachable.
type World interface {
	TileAt(p Position) (Tile, bool)
	// TilesAround returns the existing tiles next to p in Directions order.
	TilesAround(p Position) []Tile
	IsWall(p Position) bool

	TaxicabDistance(a, b Position) int
	ShortestPath(from, to Position, avoid PositionSet) []Position
	ShortestPathDistance(from, to Position) (int, bool)
	// NextStep is the first step of the host's cached shortest path.
	NextStep(from, to Position) (Position, bool)

	ClosestFriendlyFrom(p Position, excluded PositionSet) (Unit, bool)
	ClosestFriendlyNestFrom(p Position, excluded PositionSet) (Position, bool)
	ClosestEnemyNestFrom(p Position, excluded PositionSet) (Position, bool)
	ClosestCapturableTileFrom(p Position, avoid PositionSet) (Tile, bool)
	FriendlyNestPositions() []Position

	Move(u Unit, target Position)
}
