package news

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("news item not found")

type Item struct {
	ID        uint64    `gorm:"primaryKey" json:"-"`
	ItemID    string    `gorm:"size:32;uniqueIndex" json:"item_id"`
	Titulo    string    `gorm:"size:255" json:"titulo"`
	Cuerpo    string    `gorm:"type:text" json:"cuerpo"`
	AuthorID  string    `gorm:"size:32" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Item) TableName() string { return "news_items" }
