package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abc() *Inventory {
	return New(
		Device{Label: "A", Index: 0},
		Device{Label: "B", Index: 3},
		Device{Label: "C", Index: 7},
	)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    string
	}{
		{"middle advances", "B", "C"},
		{"first advances", "A", "B"},
		{"last wraps to first", "C", "A"},
		{"unknown current picks first", "Z", "A"},
		{"empty current picks first", "", "A"},
	}

	inv := abc()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inv.Next(tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Label)
		})
	}
}

func TestNextSingleDevice(t *testing.T) {
	inv := New(Device{Label: "Only", Index: 1})
	got, err := inv.Next("Only")
	require.NoError(t, err)
	assert.Equal(t, Device{Label: "Only", Index: 1}, got)
}

func TestNextEmpty(t *testing.T) {
	var inv Inventory
	_, err := inv.Next("A")
	assert.ErrorIs(t, err, ErrNoDevices)
}

func TestAddRepeatedLabelUpdatesIndexInPlace(t *testing.T) {
	inv := New(Device{Label: "HDMI", Index: 1}, Device{Label: "Speakers", Index: 2})
	assert.False(t, inv.Add(Device{Label: "HDMI", Index: 9}))

	d, ok := inv.Lookup("HDMI")
	require.True(t, ok)
	assert.Equal(t, 9, d.Index)
	assert.Equal(t, []string{"HDMI", "Speakers"}, inv.Labels())
}

func TestLabelsPreserveOrder(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, abc().Labels())
}

func TestRequire(t *testing.T) {
	inv := abc()

	d, err := inv.Require("B")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Index)

	_, err = inv.Require("Headphones")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDevice))

	var unknown *UnknownDeviceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Headphones", unknown.Label)
	assert.Equal(t, []string{"A", "B", "C"}, unknown.Choices)
	assert.Contains(t, err.Error(), "Headphones is not a valid choice")
}

func TestRestrict(t *testing.T) {
	inv := abc()

	narrowed, err := inv.Restrict([]string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, narrowed.Labels())

	// B is excluded from cycling entirely
	next, err := narrowed.Next("B")
	require.NoError(t, err)
	assert.Equal(t, "C", next.Label)

	next, err = narrowed.Next("C")
	require.NoError(t, err)
	assert.Equal(t, "A", next.Label)

	next, err = narrowed.Next("A")
	require.NoError(t, err)
	assert.Equal(t, "C", next.Label)

	// original untouched
	assert.Equal(t, []string{"A", "B", "C"}, inv.Labels())
}

func TestRestrictUnknown(t *testing.T) {
	_, err := abc().Restrict([]string{"A", "Nope"})
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestRestrictDuplicates(t *testing.T) {
	narrowed, err := abc().Restrict([]string{"B", "A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, narrowed.Labels())
}
