// Package model contains the GORM persistence models.
package model

import "time"

// MemberModel mirrors the 'member' table.
type MemberModel struct {
	ID       int       `gorm:"primaryKey;autoIncrement"`
	Email    string    `gorm:"type:varchar(255);unique;not null"`
	Password string    `gorm:"type:varchar(255);not null"`
	NickName string    `gorm:"column:nick_name;type:varchar(100);unique;not null"`
	MemberID string    `gorm:"column:member_id;type:varchar(255)"`
	Inserted time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (MemberModel) TableName() string {
	return "member"
}
