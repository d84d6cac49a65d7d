package model

import "github.com/collabpad/collab-notepad-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id" form:"id"`
	RoomID       string     `gorm:"column:room_id;not null;index:idx_room_id" json:"roomId" form:"roomId"`
	Content      string     `gorm:"column:content" json:"content" form:"content"`
	Creator      string     `gorm:"column:creator;not null" json:"creator" form:"creator"`
	Contributors []string   `gorm:"column:contributors;serializer:json" json:"contributors" form:"contributors"`
	CreatedAt    timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
