package models

// StringSlice is a []string that serializes as JSON in MySQL.
type StringSlice []string

// ParkModel is a catalog entry: a park with coordinates, tags and reviews.
type ParkModel struct {
	Base
	Slug        string      `json:"slug"        gorm:"uniqueIndex;not null"`
	Name        string      `json:"name"        gorm:"not null;index"`
	Description string      `json:"description" gorm:"type:text"`
	Tags        StringSlice `json:"tags"        gorm:"type:json;serializer:json"`
	Lng         float64     `json:"lng"         gorm:"type:decimal(11,8)"`
	Lat         float64     `json:"lat"         gorm:"type:decimal(10,8)"`
	Address     string      `json:"address"`
	Photo       string      `json:"photo"`

	// AuthorID is set once at creation and never reassigned.
	AuthorID string     `json:"author_id" gorm:"index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	Reviews []ReviewModel `json:"reviews,omitempty" gorm:"foreignKey:ParkID"`
}

func (ParkModel) TableName() string { return "parks" }
