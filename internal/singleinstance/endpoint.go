package singleinstance

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// appID is the fixed application identifier the wake endpoint's port is
// derived from (spec.md §4.9: "a stable name derived from the application
// GUID"). It is a constant, not generated per run, so every launch of this
// application agrees on the same endpoint.
var appID = uuid.MustParse("7c3e7a2e-7e41-4c1a-9b1d-9a2f7b6e4c52")

// wakePortBase and wakePortRange bound the dynamic/private port range the
// derived port is folded into (RFC 6335).
const (
	wakePortBase  = 49152
	wakePortRange = 16383
)

// wakePort derives a stable TCP port on 127.0.0.1 from appID, so every
// instance of this application listens on (and dials) the same endpoint
// without needing to persist a chosen port anywhere.
func wakePort() int {
	b := appID[:]
	sum := binary.BigEndian.Uint32(b[0:4]) ^ binary.BigEndian.Uint32(b[4:8]) ^
		binary.BigEndian.Uint32(b[8:12]) ^ binary.BigEndian.Uint32(b[12:16])
	return wakePortBase + int(sum%wakePortRange)
}
