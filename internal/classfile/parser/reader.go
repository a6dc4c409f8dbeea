package parser

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mabhi256/jvmch/internal/classfile/model"
)

// Provides utilities for reading class file data in big-endian format
type BinaryReader struct {
	reader    *bufio.Reader
	bytesRead int64
}

func NewBinaryReader(reader io.Reader) *BinaryReader {
	return &BinaryReader{
		reader: bufio.NewReader(reader),
	}
}

func (br *BinaryReader) BytesRead() int64 {
	return br.bytesRead
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", model.ErrTruncated, err)
	}
	return err
}

// ReadNBytes reads exactly n bytes and tracks position
func (br *BinaryReader) ReadNBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length: %d", n)
	}
	buf := make([]byte, n)
	bytesRead, err := io.ReadFull(br.reader, buf)
	br.bytesRead += int64(bytesRead)
	if err != nil {
		return nil, truncated(err)
	}
	return buf, nil
}

// ReadU1 reads a single unsigned byte
func (br *BinaryReader) ReadU1() (uint8, error) {
	b, err := br.reader.ReadByte()
	if err != nil {
		return 0, truncated(err)
	}
	br.bytesRead++
	return b, nil
}

// ReadU2 reads a 2-byte unsigned integer (big-endian)
func (br *BinaryReader) ReadU2() (uint16, error) {
	buf, err := br.ReadNBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadU4 reads a 4-byte unsigned integer (big-endian)
func (br *BinaryReader) ReadU4() (uint32, error) {
	buf, err := br.ReadNBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// Skip discards n bytes, failing if the stream ends first
func (br *BinaryReader) Skip(n int64) error {
	discarded, err := io.CopyN(io.Discard, br.reader, n)
	br.bytesRead += discarded
	if err != nil {
		return fmt.Errorf("failed to skip %d bytes: %w", n, truncated(err))
	}
	return nil
}

// ReadUtf8String reads a length-prefixed (u2) string body
func (br *BinaryReader) ReadUtf8String() (string, error) {
	length, err := br.ReadU2()
	if err != nil {
		return "", fmt.Errorf("failed to read string length: %w", err)
	}

	if length == 0 {
		return "", nil
	}

	stringBytes, err := br.ReadNBytes(int(length))
	if err != nil {
		return "", fmt.Errorf("failed to read string data: %w", err)
	}

	return string(stringBytes), nil
}
