package crud_test

import (
	"testing"

	"shopsample/pkg/crud"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	found := crud.Found("value")
	v, ok := found.Get()
	assert.True(t, ok)
	assert.True(t, found.IsFound())
	assert.Equal(t, "value", v)
	assert.Equal(t, "value", found.OrElse("fallback"))

	missing := crud.NotFound[string]()
	v, ok = missing.Get()
	assert.False(t, ok)
	assert.False(t, missing.IsFound())
	assert.Empty(t, v)
	assert.Equal(t, "fallback", missing.OrElse("fallback"))

	var zero crud.Optional[*int]
	assert.False(t, zero.IsFound())
}
