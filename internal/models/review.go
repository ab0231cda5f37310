package models

// ReviewModel is user feedback on a park. Reviews are never edited once
// created; deletion is an administrative action outside the API.
type ReviewModel struct {
	Base
	ParkID   string     `json:"park_id"   gorm:"index;not null"`
	AuthorID string     `json:"author_id" gorm:"index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Rating   int        `json:"rating"    gorm:"not null"`
	Text     string     `json:"text"      gorm:"type:text"`
}

func (ReviewModel) TableName() string { return "reviews" }
