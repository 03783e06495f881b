package controller

import "github.com/sarchlab/axilite/axi"

// tickWrite evaluates the write channel FSM and reports whether a data beat
// must be committed into the register bank on this edge. The address and
// data of the commit are left in edge.
func (c *Controller) tickWrite(
	cur, next *State,
	in axi.SlaveInputs,
	edge *Edge,
) bool {
	w := &next.Write

	if c.writePolicy == WriteStub {
		// The stub only ever clears BVALID. Nothing under this policy
		// raises it.
		if cur.Write.RespValid && in.BReady {
			w.RespValid = false
			edge.WriteRetired = true
			edge.WriteID = cur.Write.RespID
		}

		edge.WriteAddrAccepted = cur.Write.AddrReady && in.AW.Valid
		edge.WriteDataAccepted = cur.Write.DataReady && in.W.Valid

		return false
	}

	if cur.Write.RespValid {
		if in.BReady {
			w.RespValid = false
			edge.WriteRetired = true
			edge.WriteID = cur.Write.RespID
		}
		return false
	}

	if cur.Write.AddrReady && in.AW.Valid && !cur.Write.AddrPending {
		w.AddrPending = true
		w.Addr = in.AW.Addr
		w.AddrID = in.AW.ID & axi.IDMask
		edge.WriteAddrAccepted = true
	}

	if cur.Write.DataReady && in.W.Valid && !cur.Write.DataPending {
		w.DataPending = true
		w.Data = in.W.Data
		w.DataID = in.W.ID & axi.IDMask
		edge.WriteDataAccepted = true
	}

	if !w.AddrPending || !w.DataPending {
		return false
	}

	w.AddrPending = false
	w.DataPending = false
	w.RespValid = true
	w.RespID = w.AddrID
	w.Resp = axi.OKAY

	edge.WriteCommitted = true
	edge.WriteID = w.AddrID
	edge.WriteAddr = w.Addr
	edge.WriteData = w.Data

	return true
}
