package axi

// AddrChannel carries the read-address (AR*) or write-address (AW*) signals
// driven by the master.
type AddrChannel struct {
	ID   uint8
	Addr uint32

	// Len, Size, Burst, Lock, Cache and Prot are present on the wire for
	// protocol completeness. The slave never inspects them.
	Len   uint8
	Size  uint8
	Burst Burst
	Lock  uint8
	Cache Cache
	Prot  uint8

	Valid bool
}

// WriteDataChannel carries the W* signals driven by the master.
type WriteDataChannel struct {
	ID   uint8
	Data uint64
	Strb uint8 // not decoded
	Last bool  // not decoded
	// Valid is WVALID.
	Valid bool
}

// ReadDataChannel carries the R* signals driven by the slave.
type ReadDataChannel struct {
	ID    uint8
	Data  uint64
	Resp  Response
	Last  bool
	Valid bool
}

// WriteRespChannel carries the B* signals driven by the slave.
type WriteRespChannel struct {
	ID    uint8
	Resp  Response
	Valid bool
}

// SlaveInputs is everything the slave samples at a rising ACLK edge.
type SlaveInputs struct {
	// ResetN is ARESETn. The slave is in reset while it is false.
	ResetN bool

	AR     AddrChannel
	RReady bool

	AW     AddrChannel
	W      WriteDataChannel
	BReady bool
}

// SlaveOutputs is everything the slave drives after a rising ACLK edge.
type SlaveOutputs struct {
	ARReady bool
	R       ReadDataChannel

	AWReady bool
	WReady  bool
	B       WriteRespChannel
}

// IdleInputs returns the inputs of a master that is out of reset and not
// requesting anything.
func IdleInputs() SlaveInputs {
	return SlaveInputs{ResetN: true}
}

// ResetInputs returns the inputs of a master holding the bus in reset.
func ResetInputs() SlaveInputs {
	return SlaveInputs{ResetN: false}
}
