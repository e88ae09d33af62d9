package ticket

import (
	"fmt"
	"time"

	"github.com/visitra-hq/visitra/internal/shared/biztime"
)

// Attachment policy defaults. The byte ceiling and allow-list can be
// overridden through configuration; the quota is fixed.
const (
	MaxAttachmentsPerTicket   = 3
	DefaultMaxAttachmentBytes = 5 << 20
)

// DefaultAllowedMIMETypes is the attachment type allow-list: two raster
// image types and one document type.
var DefaultAllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
}

// Attachment is a binary file bound to a ticket. The storage key references
// the blob written by the blob store; the record and the blob are created
// together or not at all. Attachments are never updated or deleted.
type Attachment struct {
	id         uint
	ticketID   uint
	fileName   string
	storageKey string
	size       int64
	mimeType   string
	uploaderID uint
	createdAt  time.Time
}

func NewAttachment(
	ticketID uint,
	fileName string,
	storageKey string,
	size int64,
	mimeType string,
	uploaderID uint,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if len(storageKey) == 0 {
		return nil, fmt.Errorf("storage key is required")
	}
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}
	if len(mimeType) == 0 {
		return nil, fmt.Errorf("MIME type is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}

	return &Attachment{
		ticketID:   ticketID,
		fileName:   fileName,
		storageKey: storageKey,
		size:       size,
		mimeType:   mimeType,
		uploaderID: uploaderID,
		createdAt:  biztime.TruncateToMilli(biztime.NowUTC()),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	fileName string,
	storageKey string,
	size int64,
	mimeType string,
	uploaderID uint,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:         id,
		ticketID:   ticketID,
		fileName:   fileName,
		storageKey: storageKey,
		size:       size,
		mimeType:   mimeType,
		uploaderID: uploaderID,
		createdAt:  createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) StorageKey() string {
	return a.storageKey
}

func (a *Attachment) Size() int64 {
	return a.size
}

func (a *Attachment) MIMEType() string {
	return a.mimeType
}

func (a *Attachment) UploaderID() uint {
	return a.uploaderID
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
