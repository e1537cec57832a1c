package hpmodel

import "math"

// ComputeGeometry derives the building envelope dimensions from each
// row's floor area, story count and wall heights. The footprint is
// modeled as a square of side WallLengthFt; the heated volume includes
// the basement.
func ComputeGeometry(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		g := &out[i].Geometry

		g.WallLengthFt = math.Sqrt(p.FloorAreaSF / p.Stories)
		g.WallSurfaceAreaSF = g.WallLengthFt * 4 * p.Stories * p.WallHeightFt
		g.AtticFloorAreaSF = p.FloorAreaSF / p.Stories
		g.WallAreaExclWindowsSF = g.WallSurfaceAreaSF * (1 - p.WindowDoorPct)
		g.WindowDoorAreaSF = g.WallSurfaceAreaSF * p.WindowDoorPct
		g.AboveGradeBasementWallAreaSF = 4 * p.AboveGradeBasementWallHeightFt * g.WallLengthFt
		g.BelowGradeBasementWallAreaSF = 4 * p.BelowGradeBasementWallHeightFt * g.WallLengthFt
		g.BasementFloorPerimeterFt = g.WallLengthFt * 4
		g.VolumeCF = p.FloorAreaSF*p.WallHeightFt +
			(p.AboveGradeBasementWallHeightFt+p.BelowGradeBasementWallHeightFt)*p.FloorAreaSF/p.Stories
	}
	return out
}
