package models

type TicketModel struct {
	ID              uint   `gorm:"primaryKey"`
	Number          string `gorm:"uniqueIndex;size:50;not null"`
	Category        string `gorm:"size:20;not null;index"`
	Subject         string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text;not null"`
	Status          string `gorm:"size:20;not null;index"`
	CreatorID       uint   `gorm:"not null;index"`
	HostID          *uint  `gorm:"index"`
	AssigneeID      *uint  `gorm:"index"`
	Resolution      string `gorm:"type:text"`
	RejectionReason string `gorm:"type:text"`
	// Both timestamps are stamped by the domain layer; letting gorm refresh
	// updated_at would make the stored value drift from the one handed back
	// to callers for optimistic-concurrency checks.
	CreatedAt       int64  `gorm:"not null"`
	UpdatedAt       int64  `gorm:"not null"`
	ResolvedAt      *int64 `gorm:"index"`
	ClosedAt        *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	AuthorID   uint   `gorm:"not null;index"`
	Content    string `gorm:"type:text;not null"`
	IsInternal bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	FileName   string `gorm:"size:255;not null"`
	StorageKey string `gorm:"uniqueIndex;size:255;not null"`
	Size       int64  `gorm:"not null"`
	MIMEType   string `gorm:"size:100;not null"`
	UploaderID uint   `gorm:"not null;index"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
