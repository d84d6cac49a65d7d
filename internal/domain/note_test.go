package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanBeDeletedByCreator(t *testing.T) {
	n := &Note{ID: "n1", Creator: "conn-1"}
	assert.True(t, n.CanBeDeletedBy("conn-1"))
	assert.False(t, n.CanBeDeletedBy("conn-2"))
}

func TestCanBeDeletedByContributor(t *testing.T) {
	n := &Note{
		ID:           "n2",
		Creator:      MergedCreator("alice"),
		Contributors: []string{"alice"},
	}
	assert.True(t, n.CanBeDeletedBy("alice"))
	assert.False(t, n.CanBeDeletedBy("bob"))
}

// 署名前缀里包含用户名的子串不等于授权
func TestCanBeDeletedByNoSubstringMatch(t *testing.T) {
	n := &Note{
		ID:           "n3",
		Creator:      MergedCreator("alice"),
		Contributors: []string{"alice"},
	}
	assert.False(t, n.CanBeDeletedBy("ali"))
	assert.False(t, n.CanBeDeletedBy("Merged by: alice"[:9]))
	assert.True(t, n.CanBeDeletedBy(MergedCreator("alice")))
}

func TestIsMerged(t *testing.T) {
	assert.True(t, (&Note{Creator: MergedCreator("bob")}).IsMerged())
	assert.False(t, (&Note{Creator: "bob"}).IsMerged())
}

func TestMergeContents(t *testing.T) {
	notes := []*Note{
		{Content: "first"},
		{Content: "second"},
		{Content: "third"},
	}
	assert.Equal(t, "first\n\n---\n\nsecond\n\n---\n\nthird", MergeContents(notes))
	assert.Equal(t, "only", MergeContents(notes[:1]))
	assert.Equal(t, "", MergeContents(nil))
}
