package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Identity{Subject: "alice"})
	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", id.Subject)
	assert.Empty(t, id.Permissions)
}

func TestEmptySubjectIsAnonymous(t *testing.T) {
	ctx := NewContext(context.Background(), Identity{})
	_, ok := FromContext(ctx)
	assert.False(t, ok)
}
