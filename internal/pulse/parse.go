package pulse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/777genius/audio-switcher/internal/inventory"
	"github.com/777genius/audio-switcher/internal/logging"
)

// ErrInconsistentListing means index and description lines did not pair up
var ErrInconsistentListing = errors.New("inconsistent sink listing")

var (
	// "  * index: 1" marks the default sink, "    index: 0" any other
	indexPattern = regexp.MustCompile(`(.*?)index: (\d+)`)
	// "\t\tdevice.description = \"Built-in Audio Analog Stereo\""
	descriptionPattern = regexp.MustCompile(`\s+device\.description = "(.*?)"`)
)

// Listing is the result of scraping one `list-sinks` output
type Listing struct {
	// Current is the label of the sink marked active, empty if none
	Current   string
	Inventory *inventory.Inventory
}

// Parse scrapes pacmd list-sinks output. Each index line opens a record and
// the next description line names it.
func Parse(r io.Reader) (Listing, error) {
	listing := Listing{Inventory: &inventory.Inventory{}}

	var (
		indexes      []int
		descriptions int
		active       bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := indexPattern.FindStringSubmatch(line); m != nil {
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return Listing{}, fmt.Errorf("%w: bad index %q: %v", ErrInconsistentListing, m[2], err)
			}
			indexes = append(indexes, idx)
			active = strings.Contains(m[1], "*")
			continue
		}

		m := descriptionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		descriptions++
		if descriptions > len(indexes) {
			return Listing{}, fmt.Errorf("%w: description %q has no preceding index", ErrInconsistentListing, m[1])
		}

		label := m[1]
		dev := inventory.Device{Label: label, Index: indexes[descriptions-1]}
		if !listing.Inventory.Add(dev) {
			logging.Warn("Duplicate sink label %q now maps to index %d", label, dev.Index)
		}
		if active {
			if listing.Current != "" && listing.Current != label {
				logging.Warn("Multiple active sinks: %q replaces %q", label, listing.Current)
			}
			listing.Current = label
		}
	}
	if err := scanner.Err(); err != nil {
		return Listing{}, fmt.Errorf("failed to read sink listing: %w", err)
	}

	if len(indexes) != descriptions {
		return Listing{}, fmt.Errorf("%w: %d index lines, %d description lines",
			ErrInconsistentListing, len(indexes), descriptions)
	}

	return listing, nil
}
