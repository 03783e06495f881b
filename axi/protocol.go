// Package axi defines the AXI4-Lite signal bundles and protocol encodings
// exchanged between a bus master and the register-bank slave.
package axi

import "fmt"

// IDMask keeps the 4 significant bits of an AXI transaction ID.
const IDMask uint8 = 0xF

// Response is the 2-bit RRESP/BRESP encoding.
type Response uint8

// Response codes defined by AXI4.
const (
	// OKAY indicates a normal access has been successful.
	OKAY Response = 0b00
	// EXOKAY indicates an exclusive access has been successful.
	EXOKAY Response = 0b01
	// SLVERR indicates the access reached the slave but the slave returned an
	// error condition.
	SLVERR Response = 0b10
	// DECERR indicates that there is no slave at the transaction address.
	DECERR Response = 0b11
)

func (r Response) String() string {
	switch r {
	case OKAY:
		return "OKAY"
	case EXOKAY:
		return "EXOKAY"
	case SLVERR:
		return "SLVERR"
	case DECERR:
		return "DECERR"
	default:
		return fmt.Sprintf("Response(%d)", uint8(r))
	}
}

// Burst is the 2-bit AxBURST encoding. AXI4-Lite transfers are single beat,
// so the slave never inspects it.
type Burst uint8

// Burst types defined by AXI4.
const (
	BurstFixed    Burst = 0b00
	BurstIncr     Burst = 0b01
	BurstWrap     Burst = 0b10
	BurstReserved Burst = 0b11
)

func (b Burst) String() string {
	switch b {
	case BurstFixed:
		return "FIXED"
	case BurstIncr:
		return "INCR"
	case BurstWrap:
		return "WRAP"
	case BurstReserved:
		return "RESERVED"
	default:
		return fmt.Sprintf("Burst(%d)", uint8(b))
	}
}

// Cache is the 4-bit AxCACHE encoding (only the device and normal
// non-cacheable memory types are listed).
type Cache uint8

// Memory types carried by AxCACHE.
const (
	CacheDeviceNonBufferable             Cache = 0b0000
	CacheDeviceBufferable                Cache = 0b0001
	CacheNormalNonCacheableNonBufferable Cache = 0b0010
	CacheNormalNonCacheableBufferable    Cache = 0b0011
)

func (c Cache) String() string {
	switch c {
	case CacheDeviceNonBufferable:
		return "DEVICE_NON_BUFFERABLE"
	case CacheDeviceBufferable:
		return "DEVICE_BUFFERABLE"
	case CacheNormalNonCacheableNonBufferable:
		return "NORMAL_NON_CACHEABLE_NON_BUFFERABLE"
	case CacheNormalNonCacheableBufferable:
		return "NORMAL_NON_CACHEABLE_BUFFERABLE"
	default:
		return fmt.Sprintf("Cache(%d)", uint8(c))
	}
}
