package hpmodel

// ComputeHeatLoss derives the per-component heat-loss rates in
// BTU/hr/°F. Conductive components are area over R-value; infiltration
// uses the standard 0.018 BTU/ft³/°F air heat capacity with ACH50
// converted to natural air changes by the rule-of-20; slab loss is
// perimeter times the slab F-factor.
func ComputeHeatLoss(rows []Scenario) []Scenario {
	out := append([]Scenario(nil), rows...)
	for i := range out {
		p := &out[i].Params
		g := &out[i].Geometry
		h := &out[i].HeatLoss

		h.AtticLoss = g.AtticFloorAreaSF / p.RAttic
		h.WallLoss = g.WallAreaExclWindowsSF / p.RWalls
		h.WindowDoorLoss = g.WindowDoorAreaSF / p.RWindowsDoors
		h.AboveGradeBasementLoss = g.AboveGradeBasementWallAreaSF / p.RBasementWall
		h.AirChangeLoss = 0.018 * (p.ACH50 / 20) * g.VolumeCF
		h.BelowGradeBasementLoss = g.BelowGradeBasementWallAreaSF / p.RBasementWall
		h.SlabLoss = g.BasementFloorPerimeterFt * p.SlabFFactor

		h.TotalHeatLossRate = h.AtticLoss + h.WallLoss + h.WindowDoorLoss +
			h.AboveGradeBasementLoss + h.AirChangeLoss +
			h.BelowGradeBasementLoss + h.SlabLoss
	}
	return out
}
