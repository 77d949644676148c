// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Input is a readable file opened from an option value. Content compressed
// with zstd is decompressed transparently. The zero Input is not open.
type Input struct {
	io.ReadCloser
	Name       string
	Compressed bool
}

// IsOpen reports whether the input holds an open reader.
func (in Input) IsOpen() bool {
	return in.ReadCloser != nil
}

type zstdInput struct {
	dec *zstd.Decoder
	f   *os.File
}

func (z *zstdInput) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdInput) Close() error {
	z.dec.Close()
	return z.f.Close()
}

type plainInput struct {
	*bufio.Reader
	f *os.File
}

func (p *plainInput) Close() error {
	return p.f.Close()
}

func openInput(path string) (Input, error) {
	in := Input{Name: path}
	f, err := openFile(path)
	if err != nil {
		return in, err
	}
	br := bufio.NewReader(f)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return in, &ConversionError{Value: path, Err: err, kind: convFile}
	}
	if !bytes.Equal(head, zstdMagic) {
		in.ReadCloser = &plainInput{Reader: br, f: f}
		return in, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		f.Close()
		return in, &ConversionError{Value: path, Err: fmt.Errorf("failed to create zstd decoder: %w", err), kind: convFile}
	}
	in.ReadCloser = &zstdInput{dec: dec, f: f}
	in.Compressed = true
	return in, nil
}
