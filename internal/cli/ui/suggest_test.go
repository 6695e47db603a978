package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"الطويل", "الطويل", 0},
		{"الطويل", "الطول", 1},
		{"فعولن", "فاعلن", 2},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestMaxDistance(t *testing.T) {
	assert.Equal(t, 1, MaxDistance("x"))
	assert.Equal(t, 1, MaxDistance("فعلن"))
	assert.Equal(t, 2, MaxDistance("الطويل"))
	assert.Equal(t, 2, MaxDistance("الطويلل"))
	assert.Equal(t, DefaultMaxDistance, MaxDistance("المتقارب المجزوء"))
}

func TestFindSimilar(t *testing.T) {
	meters := []string{"الطويل", "المديد", "البسيط", "الوافر", "الكامل"}

	assert.Equal(t, []string{"الطويل"}, FindSimilar("الطويلل", meters))
	assert.Equal(t, []string{"الطويل"}, FindSimilar("الطَّوِيل", meters))
	assert.Empty(t, FindSimilar("المتقارب الطويل", meters))
	assert.Len(t, FindSimilar("ال", meters), 0)

	all := []string{
		"الطويل", "المديد", "البسيط", "الوافر", "الكامل", "الهزج", "الرجز", "الرمل",
		"السريع", "المنسرح", "الخفيف", "المضارع", "المقتضب", "المجتث", "المتقارب", "المتدارك",
	}
	assert.Equal(t, []string{"الطويل"}, FindSimilar("الطويلل", all))
	assert.Equal(t, []string{"الرمل"}, FindSimilar("الرمال", all))
	assert.Empty(t, FindSimilar("ال", all))

	many := FindSimilar("x", []string{"a", "b", "c", "d"})
	assert.Len(t, many, DefaultMaxSuggestions)
}
