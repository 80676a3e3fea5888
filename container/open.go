package container

import "github.com/retrodasm/resourcedasm/rderr"

// Open detects and indexes a resource fork, Mohawk archive, or Dark
// Castle data file from its leading bytes.
func Open(data []byte, opts *Options) (*Container, error) {
	if len(data) >= 4 && string(data[0:4]) == mohawkMagic {
		return OpenMohawk(data, opts)
	}
	if looksLikeResourceFork(data) {
		return OpenResourceFork(data, opts)
	}
	if looksLikeDarkCastle(data) {
		return OpenDarkCastle(data, opts)
	}
	return nil, rderr.New(rderr.KindBadMagic, "unrecognized resource container format")
}

// looksLikeResourceFork applies the structural sniff every resource-fork
// reader uses when there's no magic number to check: data_offset and
// map_offset must be in range and map_offset must follow data_offset.
func looksLikeResourceFork(data []byte) bool {
	if len(data) < 16 {
		return false
	}
	dataOffset := beU32(data[0:4])
	mapOffset := beU32(data[4:8])
	return dataOffset < uint32(len(data)) && mapOffset < uint32(len(data)) && mapOffset >= dataOffset
}

func looksLikeDarkCastle(data []byte) bool {
	if len(data) < 10 {
		return false
	}
	count := beU16(data[4:6])
	return 10+int(count)*14 <= len(data)
}

func beU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beU16(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}
