package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

func TestBufferBetween_MissingSide(t *testing.T) {
	b := booking(1, "10:00", "11:00", "12 Oak St")

	assert.Equal(t, 15, BufferBetween(nil, b, 15, nil))
	assert.Equal(t, 15, BufferBetween(b, nil, 15, nil))
	assert.Equal(t, 0, BufferBetween(nil, nil, -5, nil), "buffer is never negative")
}

func TestBufferBetween_SameGroupSameAddress(t *testing.T) {
	first := inGroup(booking(1, "10:00", "11:00", "12 Oak St"), "g1")
	second := inGroup(booking(2, "11:00", "12:00", "12 Oak St"), "g1")

	assert.Equal(t, 0, BufferBetween(first, second, 15, []*domain.Booking{first, second}))
	assert.Equal(t, 0, BufferBetween(first, second, 45, []*domain.Booking{first, second}))
}

func TestBufferBetween_SameGroupDifferentAddress(t *testing.T) {
	first := inGroup(booking(1, "10:00", "11:00", "12 Oak St"), "g1")
	second := inGroup(booking(2, "11:30", "12:30", "40 Elm Ave"), "g1")

	assert.Equal(t, 15, BufferBetween(first, second, 15, []*domain.Booking{first, second}))
}

func TestBufferBetween_DifferentGroups(t *testing.T) {
	first := inGroup(booking(1, "10:00", "11:00", "12 Oak St"), "g1")
	second := inGroup(booking(2, "11:30", "12:30", "12 Oak St"), "g2")

	assert.Equal(t, 15, BufferBetween(first, second, 15, nil))
}

func TestBufferBetween_LastInGroupAccumulates(t *testing.T) {
	a := inGroup(booking(1, "09:00", "10:00", "12 Oak St"), "g1")
	b := inGroup(booking(2, "10:00", "11:00", "12 Oak St"), "g1")
	c := inGroup(booking(3, "11:00", "12:00", "12 Oak St"), "g1")
	c.IsLastInGroup = true
	c.ExtraDepartureBuffer = 10
	other := booking(4, "14:00", "15:00", "40 Elm Ave")
	all := []*domain.Booking{a, b, c, other}

	// 15 * 3 + 10
	assert.Equal(t, 55, BufferBetween(c, other, 15, all))
}

func TestBufferBetween_LastInGroupWithoutExtra(t *testing.T) {
	a := inGroup(booking(1, "09:00", "10:00", "12 Oak St"), "g1")
	a.IsLastInGroup = true
	other := booking(2, "14:00", "15:00", "40 Elm Ave")

	assert.Equal(t, 15, BufferBetween(a, other, 15, []*domain.Booking{a, other}))
}

func TestBufferBetween_RequestedContext(t *testing.T) {
	existing := inGroup(booking(1, "10:00", "11:00", "12 Oak St"), "g1")
	requested := &domain.Booking{GroupID: ptr.Ptr("g1"), Location: domain.Location{Address: " 12 Oak St "}}

	assert.Equal(t, 0, BufferBetween(requested, existing, 15, []*domain.Booking{existing}))

	requested.GroupID = nil
	assert.Equal(t, 15, BufferBetween(requested, existing, 15, []*domain.Booking{existing}))

	requested.GroupID = ptr.Ptr("")
	existing.GroupID = ptr.Ptr("")
	assert.Equal(t, 15, BufferBetween(requested, existing, 15, []*domain.Booking{existing}), "empty group ids never match")
}
