package models

import (
	"time"
)

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname    string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname    string     `gorm:"column:user_lname" json:"user_lname"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	RoleID       int        `gorm:"column:role_id" json:"role_id"`
	UnitID       int        `gorm:"column:unit_id" json:"unit_id"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Unit Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

type Unit struct {
	UnitID       int        `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	UnitName     string     `gorm:"column:unit_name" json:"unit_name"`
	Acronym      string     `gorm:"column:acronym" json:"acronym"`
	ParentUnitID *int       `gorm:"column:parent_unit_id" json:"parent_unit_id,omitempty"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Unit) TableName() string {
	return "units"
}

func (u *User) FullName() string {
	return u.UserFname + " " + u.UserLname
}
