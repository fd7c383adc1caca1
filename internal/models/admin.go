package models

type Admin struct {
	Email       string `json:"email" gorm:"primaryKey;size:255"`
	Name        string `json:"name" gorm:"size:255"`
	ControlType string `json:"control_type" gorm:"column:control_type;size:1"`
}

func (Admin) TableName() string {
	return "admins"
}
