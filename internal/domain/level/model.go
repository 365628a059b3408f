package level

import "time"

// Level is the metadata record for one uploaded stage. The payload
// itself lives with the storage provider; this row only describes it.
type Level struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	LevelID     string    `gorm:"column:level_id;uniqueIndex;not null;size:19"`
	AuthorID    int64     `gorm:"column:author_id;index;not null"`
	Style       int       `gorm:"column:style;default:0"`
	Environment int       `gorm:"column:environment;default:0"`
	Tag1        int       `gorm:"column:tag_1;default:0"`
	Tag2        int       `gorm:"column:tag_2;default:0"`
	Likes       int       `gorm:"column:likes;default:0"`
	Dislikes    int       `gorm:"column:dislikes;default:0"`
	Plays       int       `gorm:"column:plays;default:0"`
	Deaths      int       `gorm:"column:deaths;default:0"`
	Clears      int       `gorm:"column:clears;default:0"`
	Featured    bool      `gorm:"column:featured;default:false"`
	NonLatin    bool      `gorm:"column:non_latin;default:false"`
	Date        time.Time `gorm:"column:date"`
}

func (Level) TableName() string {
	return "levels"
}
