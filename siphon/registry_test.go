package siphon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleWildcard(t *testing.T) {
	assert.True(t, Compatible(AnyType, TypeTag("int")))
	assert.True(t, Compatible(TypeTag("int"), AnyType))
	assert.True(t, Compatible(AnyType, AnyType))
}

func TestCompatibleEqualTags(t *testing.T) {
	assert.True(t, Compatible(TypeTag("widget"), TypeTag("widget")))
}

func TestCompatibleUnrelatedTagsAreIncompatible(t *testing.T) {
	assert.False(t, Compatible(TypeTag("widget"), TypeTag("gadget")))
}

func TestRegisterSubtypeIsOneDirectional(t *testing.T) {
	sub := TypeTag("registry-test-sub")
	super := TypeTag("registry-test-super")

	RegisterSubtype(sub, super)
	assert.True(t, Compatible(sub, super))
	assert.False(t, Compatible(super, sub))
}

func TestRegisterSubtypeIsIdempotent(t *testing.T) {
	sub := TypeTag("registry-test-sub-2")
	super := TypeTag("registry-test-super-2")

	RegisterSubtype(sub, super)
	RegisterSubtype(sub, super)

	existing, _ := compatible.Load(sub)
	count := 0
	for _, tag := range existing {
		if tag == super {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
