// Package exif extracts capture dates from JPEG metadata. It is a narrow
// leaf parser: bytes in, optional timestamp out. Only the tags needed for
// photo-date validation are read.
package exif

import (
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var ErrNoDate = errors.New("no capture date in image")

const (
	markerSOI  = 0xFFD8
	markerAPP1 = 0xFFE1
	markerSOS  = 0xFFDA

	tagDateTime          = 0x0132
	tagExifIFDPointer    = 0x8769
	tagDateTimeOriginal  = 0x9003
	tagDateTimeDigitized = 0x9004
)

var exifDatePattern = regexp.MustCompile(`(\d{4}):(\d{2}):(\d{2})\s+(\d{2}):(\d{2}):(\d{2})`)

// CaptureTime returns the DateTimeOriginal (preferred), DateTimeDigitized,
// or DateTime timestamp from a JPEG's EXIF block. ErrNoDate means the image
// carries no usable date, which callers treat as "no signal", not failure.
func CaptureTime(data []byte) (time.Time, error) {
	if len(data) < 4 || readUint16(data, 0) != markerSOI {
		return time.Time{}, ErrNoDate
	}

	offset := 2
	for offset+4 <= len(data) {
		marker := readUint16(data, offset)
		if marker&0xFF00 != 0xFF00 {
			break
		}
		if marker == markerSOS {
			// Start of scan: no metadata past this point.
			break
		}

		length := int(readUint16(data, offset+2))
		if length < 2 || offset+2+length > len(data) {
			break
		}

		if marker == markerAPP1 {
			segment := data[offset+4 : offset+2+length]
			if timestamp, ok := parseEXIFSegment(segment); ok {
				return timestamp, nil
			}
		}

		offset += 2 + length
	}

	return time.Time{}, ErrNoDate
}

func parseEXIFSegment(segment []byte) (time.Time, bool) {
	if len(segment) < 14 || string(segment[:6]) != "Exif\x00\x00" {
		return time.Time{}, false
	}

	tiff := segment[6:]
	var order binary.ByteOrder
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	default:
		return time.Time{}, false
	}

	ifdOffset := int(order.Uint32(tiff[4:8]))

	var dateTime string
	var exifIFDOffset int

	walkIFD(tiff, ifdOffset, order, func(tag uint16, valueOffset int) {
		switch tag {
		case tagDateTime:
			dateTime = readASCII(tiff, valueOffset, 19)
		case tagExifIFDPointer:
			exifIFDOffset = valueOffset
		}
	})

	// DateTimeOriginal in the Exif sub-IFD beats the IFD0 DateTime.
	var originalDateTime string
	if exifIFDOffset > 0 {
		walkIFD(tiff, exifIFDOffset, order, func(tag uint16, valueOffset int) {
			if originalDateTime != "" {
				return
			}
			if tag == tagDateTimeOriginal || tag == tagDateTimeDigitized {
				originalDateTime = readASCII(tiff, valueOffset, 19)
			}
		})
	}

	if originalDateTime != "" {
		dateTime = originalDateTime
	}
	if dateTime == "" {
		return time.Time{}, false
	}
	return parseEXIFDate(dateTime)
}

// walkIFD visits every entry of one IFD, reporting the tag and its value
// offset (EXIF ASCII dates are longer than 4 bytes, so the value field is
// always an offset from the TIFF header).
func walkIFD(tiff []byte, ifdOffset int, order binary.ByteOrder, visit func(tag uint16, valueOffset int)) {
	if ifdOffset < 0 || ifdOffset+2 > len(tiff) {
		return
	}

	entryCount := int(order.Uint16(tiff[ifdOffset : ifdOffset+2]))
	for i := 0; i < entryCount; i++ {
		entryOffset := ifdOffset + 2 + i*12
		if entryOffset+12 > len(tiff) {
			return
		}
		tag := order.Uint16(tiff[entryOffset : entryOffset+2])
		valueOffset := int(order.Uint32(tiff[entryOffset+8 : entryOffset+12]))
		visit(tag, valueOffset)
	}
}

func readASCII(tiff []byte, offset int, length int) string {
	if offset < 0 || offset+length > len(tiff) {
		return ""
	}
	raw := tiff[offset : offset+length]
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

func parseEXIFDate(value string) (time.Time, bool) {
	matches := exifDatePattern.FindStringSubmatch(value)
	if matches == nil {
		return time.Time{}, false
	}
	canonical := fmt.Sprintf("%s:%s:%s %s:%s:%s", matches[1], matches[2], matches[3], matches[4], matches[5], matches[6])
	timestamp, err := time.ParseInLocation("2006:01:02 15:04:05", canonical, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return timestamp, true
}

func readUint16(data []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(data[offset : offset+2])
}
