package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeTracker(t *testing.T) {
	ct := NewChangeTracker()
	assert.False(t, ct.HasChanges())
	assert.Empty(t, ct.DirtyFields())

	ct.MarkDirty(FieldStatus)
	ct.MarkDirty(FieldTrackingCode)

	assert.True(t, ct.HasChanges())
	assert.True(t, ct.Dirty(FieldStatus))
	assert.False(t, ct.Dirty(FieldDeliveredAt))
	assert.ElementsMatch(t, []string{FieldStatus, FieldTrackingCode}, ct.DirtyFields())

	ct.Clear()
	assert.False(t, ct.HasChanges())
	assert.Empty(t, ct.DirtyFields())
}
