package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "A12-05", "3-12": floor and sequence separated explicitly.
	floorSeqRe = regexp.MustCompile(`^([A-Z]*)\s*-?\s*(\d+)\s*-\s*(\d+)$`)
	// "101", "1203", "B-204": the last two digits are the sequence on the floor.
	compactRe = regexp.MustCompile(`^([A-Z]*)\s*-?\s*(\d{3,})$`)
)

// ParsedRoomNumber holds the structured data parsed from a room number.
type ParsedRoomNumber struct {
	Wing  string
	Floor int
	Seq   int
}

// RoomNumber extracts wing, floor, and sequence from a raw room number.
func RoomNumber(raw string) (ParsedRoomNumber, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "#", "")

	if m := floorSeqRe.FindStringSubmatch(s); m != nil {
		floor, errFloor := strconv.Atoi(m[2])
		seq, errSeq := strconv.Atoi(m[3])
		if errFloor == nil && errSeq == nil {
			return ParsedRoomNumber{Wing: m[1], Floor: floor, Seq: seq}, nil
		}
	}

	if m := compactRe.FindStringSubmatch(s); m != nil {
		digits := m[2]
		floor, errFloor := strconv.Atoi(digits[:len(digits)-2])
		seq, errSeq := strconv.Atoi(digits[len(digits)-2:])
		if errFloor == nil && errSeq == nil {
			return ParsedRoomNumber{Wing: m[1], Floor: floor, Seq: seq}, nil
		}
	}

	return ParsedRoomNumber{}, fmt.Errorf("unable to parse room number: %q", raw)
}
