package models

// Video is a single entry of the public listing.
type Video struct {
	ID      uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string `json:"title" form:"title" gorm:"column:title;type:varchar(255)"`
	URL     string `json:"url" form:"url" gorm:"column:url;type:varchar(500)"`
	Comment string `json:"comment" form:"comment" gorm:"column:comment;type:text"`
	Link1   string `json:"link1" form:"link1" gorm:"column:link1;type:varchar(500)"`
	Link2   string `json:"link2" form:"link2" gorm:"column:link2;type:varchar(500)"`
	Link3   string `json:"link3" form:"link3" gorm:"column:link3;type:varchar(500)"`
	TLink1  string `json:"Tlink1" form:"Tlink1" gorm:"column:Tlink1;type:varchar(255)"`
	TLink2  string `json:"Tlink2" form:"Tlink2" gorm:"column:Tlink2;type:varchar(255)"`
	TLink3  string `json:"Tlink3" form:"Tlink3" gorm:"column:Tlink3;type:varchar(255)"`
}

// TableName pins the table to "urlvideo".
func (Video) TableName() string { return "urlvideo" }
