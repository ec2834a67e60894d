// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// BundleMagic is the reflection bundle signature.
const BundleMagic = "SHDB"

// BundleVersion is the current bundle format version.
const BundleVersion uint16 = 1

// A bundle packs the reflection records of one target pass into a
// single container so a runtime can load them with one read. Each
// record is LZ4 block compressed; a record whose compressed size
// equals its uncompressed size is stored raw.
//
// Layout, little-endian:
//
//	magic:   4 bytes "SHDB"
//	version: u16
//	count:   u16
//	records: count x { usize:u32, csize:u32, csize bytes }

// WriteBundle writes records as one compressed container.
func WriteBundle(w io.Writer, records []*Reflection) error {
	if _, err := w.Write([]byte(BundleMagic)); err != nil {
		return err
	}
	var head [4]byte
	binary.LittleEndian.PutUint16(head[0:], BundleVersion)
	binary.LittleEndian.PutUint16(head[2:], uint16(len(records)))
	if _, err := w.Write(head[:]); err != nil {
		return err
	}

	for _, r := range records {
		var raw bytes.Buffer
		if err := Encode(&raw, r); err != nil {
			return err
		}
		payload := raw.Bytes()

		comp := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, comp, nil)
		if err != nil {
			return fmt.Errorf("refl: compress record: %w", err)
		}
		if n == 0 || n >= len(payload) {
			// incompressible, store raw
			comp = payload
			n = len(payload)
		}

		var sizes [8]byte
		binary.LittleEndian.PutUint32(sizes[0:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(sizes[4:], uint32(n))
		if _, err := w.Write(sizes[:]); err != nil {
			return err
		}
		if _, err := w.Write(comp[:n]); err != nil {
			return err
		}
	}
	return nil
}

// ReadBundle parses a container written by WriteBundle.
func ReadBundle(r io.Reader) ([]*Reflection, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("refl: bundle header: %w", err)
	}
	if string(head[:4]) != BundleMagic {
		return nil, fmt.Errorf("refl: bad bundle magic %q", head[:4])
	}
	if v := binary.LittleEndian.Uint16(head[4:]); v != BundleVersion {
		return nil, fmt.Errorf("refl: unsupported bundle version %d", v)
	}
	count := int(binary.LittleEndian.Uint16(head[6:]))

	records := make([]*Reflection, 0, count)
	sizes := make([]byte, 8)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, sizes); err != nil {
			return nil, fmt.Errorf("refl: bundle record %d: %w", i, err)
		}
		usize := binary.LittleEndian.Uint32(sizes[0:])
		csize := binary.LittleEndian.Uint32(sizes[4:])

		comp := make([]byte, csize)
		if _, err := io.ReadFull(r, comp); err != nil {
			return nil, fmt.Errorf("refl: bundle record %d: %w", i, err)
		}

		payload := comp
		if csize != usize {
			payload = make([]byte, usize)
			if _, err := lz4.UncompressBlock(comp, payload); err != nil {
				return nil, fmt.Errorf("refl: bundle record %d: %w", i, err)
			}
		}

		rec, err := Decode(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("refl: bundle record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
