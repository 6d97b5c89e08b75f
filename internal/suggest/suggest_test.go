package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	candidates := []string{"User", "Post", "PostInput", "Comment"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exact", "Post", "Post"},
		{"case", "post", "Post"},
		{"typo", "Pots", "Post"},
		{"suffix typo", "PostInptu", "PostInput"},
		{"far away", "Subscription", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Closest(tc.in, candidates))
		})
	}
	assert.Empty(t, Closest("Post", nil))
}

func TestHint(t *testing.T) {
	assert.Equal(t, ` (did you mean "User"?)`, Hint("Usr", []string{"User"}))
	assert.Empty(t, Hint("User", []string{"User"}))
	assert.Empty(t, Hint("Zzz", []string{"User"}))
}
