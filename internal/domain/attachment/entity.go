package attachment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shipping-management/internal/domain/record"
)

const MimePDF = "application/pdf"

// Attachment is a stored binary owned by a record. Attachments are immutable once written.
type Attachment struct {
	ID        uuid.UUID
	Name      string
	MimeType  string
	Data      []byte
	Owner     record.Ref
	CreatedAt time.Time
}

func (a *Attachment) IsPDF() bool {
	return a.MimeType == MimePDF
}

// IsLabel reports whether the attachment looks like a carrier label PDF.
func (a *Attachment) IsLabel() bool {
	return a.IsPDF() && strings.HasPrefix(a.Name, "Label")
}

// DownloadURL is the API path serving the attachment content.
func DownloadURL(id uuid.UUID) string {
	return fmt.Sprintf("/api/v1/attachments/%s/download", id)
}
