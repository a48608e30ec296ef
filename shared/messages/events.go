package messages

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Actions carried in the "action" field of every bridge message
const (
	ActionGenerateFruit = "generateFruit"
	ActionSliceFruit    = "sliceFruit"
	ActionSliceAck      = "sliceAck"
)

// Envelope is decoded first to route a message by its action
type Envelope struct {
	Action string `json:"action"`
}

// TargetTab describes an idle target as the monitor sees it
type TargetTab struct {
	ID              int    `json:"id"`
	Title           string `json:"title,omitempty"`
	URL             string `json:"url,omitempty"`
	Favicon         string `json:"favicon,omitempty"`
	IdleTime        int64  `json:"idleTime,omitempty"`        // milliseconds
	EstimatedMemory int    `json:"estimatedMemory,omitempty"` // MB
}

// GenerateFruit is sent by the monitor to ask for a fruit
type GenerateFruit struct {
	Action    string    `json:"action"`
	TargetTab TargetTab `json:"targetTab"`
}

// SliceFruit is sent to the monitor when a target's fruit is cut
type SliceFruit struct {
	Action    string `json:"action"`
	TabID     int    `json:"tabId"`
	RequestID uint64 `json:"requestId"`
}

// SliceAck answers a SliceFruit with the same RequestID
type SliceAck struct {
	Action      string       `json:"action"`
	RequestID   uint64       `json:"requestId"`
	Success     bool         `json:"success"`
	MemoryFreed MemoryAmount `json:"memoryFreed"`
	Error       string       `json:"error,omitempty"`
}

func NewSliceFruit(tabID int, requestID uint64) SliceFruit {
	return SliceFruit{Action: ActionSliceFruit, TabID: tabID, RequestID: requestID}
}

func NewGenerateFruit(tab TargetTab) GenerateFruit {
	return GenerateFruit{Action: ActionGenerateFruit, TargetTab: tab}
}

// MemoryAmount is a size in MB. Monitors report it either as a number or
// as display text such as "~45 MB"; the first integer in the text is used.
type MemoryAmount int

func (m MemoryAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

func (m *MemoryAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = MemoryAmount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("memoryFreed: %w", err)
	}
	*m = MemoryAmount(firstInt(s))
	return nil
}

// firstInt returns the first run of decimal digits in s, or 0.
func firstInt(s string) int {
	start := -1
	for i, r := range s {
		isDigit := r >= '0' && r <= '9'
		switch {
		case isDigit && start < 0:
			start = i
		case !isDigit && start >= 0:
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start < 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[start:])
	return n
}
