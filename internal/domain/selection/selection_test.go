package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name    string
		current Set
		id      string
		want    []string
	}{
		{name: "removes present id", current: New("p1", "p2"), id: "p2", want: []string{"p1"}},
		{name: "adds absent id", current: New("p1"), id: "p3", want: []string{"p1", "p3"}},
		{name: "adds to empty set", current: New(), id: "p1", want: []string{"p1"}},
		{name: "nil set", current: nil, id: "p1", want: []string{"p1"}},
		{name: "removes last id", current: New("p1"), id: "p1", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toggle(tt.current, tt.id)
			assert.Equal(t, tt.want, got.IDs())
		})
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	in := New("p1", "p2")
	_ = Toggle(in, "p2")
	assert.True(t, in.Has("p2"))
	assert.Len(t, in, 2)
}

func TestToggle_TwiceIsIdentity(t *testing.T) {
	in := New("p1")
	out := Toggle(Toggle(in, "p9"), "p9")
	assert.Equal(t, in.IDs(), out.IDs())
}
