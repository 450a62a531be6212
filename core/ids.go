package core

// PointID is a dense identifier for a point within a single index.
// IDs are assigned by input position at build time and never change
// afterwards. It is strictly 32-bit, allowing for max 4 Billion points
// per index. Used for all hot-path structures (result sets, filter
// bitmaps).
type PointID uint32

// MaxPointID is the maximum possible value for a PointID.
const MaxPointID = ^PointID(0)
