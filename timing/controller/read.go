package controller

import "github.com/sarchlab/axilite/axi"

// tickRead evaluates the read channel FSM.
//
//	IDLE --(ARREADY & ARVALID & !RVALID)--> RESPONSE_VALID
//	RESPONSE_VALID --(RVALID & RREADY)--> IDLE
//
// Accepting a new request takes priority over retiring a response; with
// RVALID in the acceptance condition the two never coincide.
func (c *Controller) tickRead(
	cur, next *State,
	in axi.SlaveInputs,
	edge *Edge,
) {
	r := &next.Read

	if in.AR.Valid {
		r.SampledID = in.AR.ID & axi.IDMask
		r.SampledAddr = in.AR.Addr
	}

	readEnable := cur.Read.Ready && in.AR.Valid && !cur.Read.Valid

	if readEnable {
		data, hit := c.regFile.Read(in.AR.Addr)

		r.Valid = true
		r.Last = true
		r.ID = in.AR.ID & axi.IDMask
		r.Data = data
		r.Resp = axi.OKAY

		edge.ReadAccepted = true
		edge.ReadID = r.ID
		edge.ReadAddr = in.AR.Addr
		edge.ReadData = data
		edge.ReadHit = hit
	} else if cur.Read.Valid && in.RReady {
		r.Valid = false
		r.Last = false

		edge.ReadRetired = true
		edge.ReadID = cur.Read.ID
		edge.ReadData = cur.Read.Data
	}
}
