package db_models

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string
	AvatarURL    *string `gorm:"column:avatar_url"`
	Trips        []Trip  `gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }
