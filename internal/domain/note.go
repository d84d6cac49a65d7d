package domain

import (
	"strings"

	"github.com/collabpad/collab-notepad-service/pkg/timex"
)

// MergeDelimiter 合并笔记时内容之间的分隔符
const MergeDelimiter = "\n\n---\n\n"

// MergeAttributionPrefix 合并产生的笔记的创建者署名前缀
const MergeAttributionPrefix = "Merged by: "

// Note 房间内的一条笔记
// Creator 为创建时的连接句柄或合并署名
// Contributors 记录合并笔记的原始贡献者，用于删除授权
type Note struct {
	ID           string
	RoomID       string
	Content      string
	Creator      string
	Contributors []string
	CreatedAt    timex.Time
	UpdatedAt    timex.Time
}

// IsMerged 是否为合并产生的笔记
func (n *Note) IsMerged() bool {
	return strings.HasPrefix(n.Creator, MergeAttributionPrefix)
}

// CanBeDeletedBy 删除授权：创建者本人，或合并笔记的贡献者
func (n *Note) CanBeDeletedBy(requester string) bool {
	if n.Creator == requester {
		return true
	}
	for _, contributor := range n.Contributors {
		if contributor == requester {
			return true
		}
	}
	return false
}

// MergedCreator 合并署名，例如 "Merged by: alice"
func MergedCreator(merger string) string {
	return MergeAttributionPrefix + merger
}

// MergeContents 按给定顺序拼接笔记内容
func MergeContents(notes []*Note) string {
	contents := make([]string, 0, len(notes))
	for _, n := range notes {
		contents = append(contents, n.Content)
	}
	return strings.Join(contents, MergeDelimiter)
}
