// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"encoding/binary"

	"go.mozilla.org/pkcs7"

	"github.com/retrodasm/resourcedasm/rderr"
)

// WIN_CERTIFICATE Revision values.
const (
	WinCertRevision1_0 = 0x0100
	WinCertRevision2_0 = 0x0200
)

// WIN_CERTIFICATE CertificateType values. Only WinCertTypePKCSSignedData
// carries a PKCS#7 blob; the others are either reserved or unsupported.
const (
	WinCertTypeX509           = 0x0001
	WinCertTypePKCSSignedData = 0x0002
	WinCertTypeReserved1      = 0x0003
	WinCertTypeTSStackSigned  = 0x0004
)

// WinCertificate is the fixed-size header preceding each attribute
// certificate entry in the security directory.
type WinCertificate struct {
	Length          uint32 `json:"length"`
	Revision        uint16 `json:"revision"`
	CertificateType uint16 `json:"certificate_type"`
}

// parseSecurityDirectory walks the security directory's WIN_CERTIFICATE
// entries (a PE can be dual- or triple-signed to support deprecated hash
// algorithms) and parses each PKCS#7 SignedData blob. Chain-of-trust
// verification is out of scope here: spec.md treats the certificate
// directory as best-effort introspection for a reverse-engineering CLI, not
// a security gate, so callers get the parsed PKCS#7 structures and decide
// for themselves what to trust.
func (pe *File) parseSecurityDirectory(rva, size uint32) error {
	certHeader := WinCertificate{}
	certSize := uint32(binary.Size(certHeader))

	// The virtual address value from the Certificate Table entry in the
	// Optional Header Data Directory is a file offset, not an RVA.
	fileOffset := rva

	var certs []*pkcs7.PKCS7
	for {
		if err := pe.structUnpack(&certHeader, fileOffset, certSize); err != nil {
			return rderr.Wrap(rderr.KindOutOfBounds, "reading WIN_CERTIFICATE header", err)
		}

		if fileOffset+certHeader.Length > pe.size {
			return rderr.New(rderr.KindOutOfBounds, "WIN_CERTIFICATE entry extends past end of file")
		}
		if certHeader.Length == 0 {
			return rderr.New(rderr.KindCorruptSize, "WIN_CERTIFICATE entry has zero length")
		}

		if certHeader.CertificateType == WinCertTypePKCSSignedData {
			certContent := pe.data[fileOffset+certSize : fileOffset+certHeader.Length]
			p, err := pkcs7.Parse(certContent)
			if err != nil {
				pe.logger.Warnf("skipping unparsable PKCS#7 signature blob: %v", err)
			} else {
				certs = append(certs, p)
			}
		}

		// Subsequent entries are accessed by advancing that entry's dwLength
		// bytes, rounded up to an 8-byte multiple, from the start of the
		// current attribute certificate entry.
		nextOffset := certHeader.Length + fileOffset
		nextOffset = ((nextOffset + 8 - 1) / 8) * 8

		if nextOffset >= fileOffset+size {
			break
		}
		fileOffset = nextOffset
	}

	pe.Certificates = certs
	pe.IsSigned = len(certs) > 0
	pe.HasCertificate = true
	return nil
}
