package models

// UserModel is the persistence model for the user directory the ticket core
// reads from. Account lifecycle (registration, passwords, sessions) is owned
// by the identity service; this table is a read model.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"not null;size:100"`
	Role      string `gorm:"not null;default:user;size:30;index"`
	HostID    *uint  `gorm:"index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
