package services

import (
	"encoding/binary"
	"testing"
	"time"
)

// jpegWithDate builds the smallest JPEG whose EXIF block carries one IFD0
// DateTime tag.
func jpegWithDate(date string) []byte {
	order := binary.LittleEndian
	put16 := func(b []byte, v uint16) []byte {
		tmp := make([]byte, 2)
		order.PutUint16(tmp, v)
		return append(b, tmp...)
	}
	put32 := func(b []byte, v uint32) []byte {
		tmp := make([]byte, 4)
		order.PutUint32(tmp, v)
		return append(b, tmp...)
	}

	tiff := []byte{'I', 'I'}
	tiff = put16(tiff, 42)
	tiff = put32(tiff, 8)
	tiff = put16(tiff, 1)       // one IFD0 entry
	tiff = put16(tiff, 0x0132)  // DateTime
	tiff = put16(tiff, 2)       // ASCII
	tiff = put32(tiff, 20)
	tiff = put32(tiff, 26)      // value lives right after the IFD
	tiff = put32(tiff, 0)
	tiff = append(tiff, []byte(date)...)
	tiff = append(tiff, 0)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	bigEndianLength := make([]byte, 2)
	binary.BigEndian.PutUint16(bigEndianLength, uint16(len(payload)+2))
	jpeg = append(jpeg, bigEndianLength...)
	return append(jpeg, payload...)
}

func TestValidatePhotoDateExactMatch(t *testing.T) {
	photo := jpegWithDate("2025:06:10 08:30:00")
	claimed := time.Date(2025, 6, 10, 19, 0, 0, 0, time.Local)

	result := ValidatePhotoDate(photo, time.Time{}, claimed)

	if !result.Valid {
		t.Fatalf("expected valid, got %+v", result)
	}
	if result.Message != "" {
		t.Fatalf("exact match must pass silently, got %q", result.Message)
	}
	if result.Source != "exif" {
		t.Fatalf("source = %s, want exif", result.Source)
	}
	if result.PhotoDate != "2025-06-10" {
		t.Fatalf("photo date = %s, want 2025-06-10", result.PhotoDate)
	}
}

func TestValidatePhotoDateOneDayOffIsAdvisory(t *testing.T) {
	photo := jpegWithDate("2025:06:11 00:30:00")
	claimed := time.Date(2025, 6, 10, 23, 0, 0, 0, time.Local)

	result := ValidatePhotoDate(photo, time.Time{}, claimed)

	if !result.Valid {
		t.Fatalf("one day off must still pass, got %+v", result)
	}
	if result.Message == "" {
		t.Fatal("one day off must carry an advisory message")
	}
}

func TestValidatePhotoDateTooFarOffFails(t *testing.T) {
	photo := jpegWithDate("2025:06:05 12:00:00")
	claimed := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

	result := ValidatePhotoDate(photo, time.Time{}, claimed)

	if result.Valid {
		t.Fatalf("five days off must fail, got %+v", result)
	}
	if result.PhotoDate != "2025-06-05" {
		t.Fatalf("photo date = %s, want 2025-06-05", result.PhotoDate)
	}
}

func TestValidatePhotoDateNoSignalPassesWithAdvisory(t *testing.T) {
	result := ValidatePhotoDate([]byte("definitely not a jpeg"), time.Time{}, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local))

	if !result.Valid {
		t.Fatalf("no date signal must never block, got %+v", result)
	}
	if result.Message == "" {
		t.Fatal("no signal must carry an advisory message")
	}
	if result.PhotoDate != "" {
		t.Fatalf("no signal must not invent a photo date, got %s", result.PhotoDate)
	}
}

func TestValidatePhotoDateFileModifiedFallback(t *testing.T) {
	modified := time.Date(2025, 6, 10, 21, 15, 0, 0, time.Local)
	claimed := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)

	result := ValidatePhotoDate([]byte("no exif here"), modified, claimed)

	if !result.Valid {
		t.Fatalf("expected valid via file time, got %+v", result)
	}
	if result.Source != "file_modified" {
		t.Fatalf("source = %s, want file_modified", result.Source)
	}
}

func TestValidatePhotoDateFileModifiedTooOldFails(t *testing.T) {
	modified := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	claimed := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)

	result := ValidatePhotoDate([]byte("no exif here"), modified, claimed)

	if result.Valid {
		t.Fatalf("stale file time must fail, got %+v", result)
	}
}
