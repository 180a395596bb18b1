package submission

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/adxsetup/core"
)

// AnonymousUserID is the submitter identity stamped on every intake;
// the public form requires no account.
const AnonymousUserID = "anonymous"

// Status is the operator-facing review state of a Submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPending, StatusRejected, StatusCompleted}

// IsValid reports whether s is one of the known status labels.
// Any valid status may transition to any other; none is terminal.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

type Submission struct {
	ID                string    `json:"id"`
	WordpressURL      string    `json:"wordpress_url"`
	WordpressUsername string    `json:"wordpress_username"`
	WordpressPassword string    `json:"wordpress_password"`
	WhatsappNumber    string    `json:"whatsapp_number"`
	Package           string    `json:"package"`
	ReceiptFile       string    `json:"receipt_file,omitempty"` // base64 data URL
	ReceiptFileName   string    `json:"receipt_file_name"`
	ReceiptFileType   string    `json:"receipt_file_type"`
	ReceiptURL        string    `json:"receipt_url,omitempty"` // set when blob storage is active
	CreatedAt         time.Time `json:"created_at"`            // UTC
	UserID            string    `json:"user_id"`
	Status            Status    `json:"status"`
	NetworkCode       string    `json:"network_code,omitempty"`
}

// NewSubmission contains information needed to create a new Submission.
type NewSubmission struct {
	WordpressURL      string `json:"wordpress_url" form:"wordpress_url" validate:"required,url"`
	WordpressUsername string `json:"wordpress_username" form:"wordpress_username" validate:"required"`
	WordpressPassword string `json:"wordpress_password" form:"wordpress_password" validate:"required"`
	WhatsappNumber    string `json:"whatsapp_number" form:"whatsapp_number" validate:"required"`
	Package           string `json:"package" form:"package" validate:"required"`
	NetworkCode       string `json:"network_code" form:"network_code"`

	// attached receipt; populated from the multipart file part
	ReceiptName string `json:"-"`
	ReceiptType string `json:"-"`
	ReceiptData []byte `json:"-"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.WordpressURL = core.CleanString(ns.WordpressURL)
	ns.WordpressUsername = core.CleanString(ns.WordpressUsername)
	ns.WhatsappNumber = core.CleanString(ns.WhatsappNumber)
	ns.Package = core.CleanString(ns.Package)
	ns.NetworkCode = core.CleanString(ns.NetworkCode)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	if len(ns.ReceiptData) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "receipt", Error: "please upload a payment receipt"})
	}
	return nil
}

// contentType returns the declared media type of the receipt,
// sniffing the content when the client declared none.
func (ns *NewSubmission) contentType() string {
	if ns.ReceiptType != "" {
		return ns.ReceiptType
	}
	return http.DetectContentType(ns.ReceiptData)
}

// dataURL encodes the receipt as a self-contained inline payload.
func (ns *NewSubmission) dataURL() string {
	return "data:" + ns.contentType() + ";base64," + base64.StdEncoding.EncodeToString(ns.ReceiptData)
}

// UpdateSubmissionStatus defines the only mutation allowed after creation.
type UpdateSubmissionStatus struct {
	Status Status `json:"status" validate:"required,oneof=pending rejected completed"`
}

func (us *UpdateSubmissionStatus) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}
