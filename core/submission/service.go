package submission

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
)

var ErrNotFound = errors.New("submission not found")

type (
	Repository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		QueryAllSubmissions(ctx context.Context) ([]Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		UpdateSubmissionStatus(ctx context.Context, id string, status Status) (Submission, error)
		DeleteSubmissionsByID(ctx context.Context, ids ...string) error
	}

	// ReceiptStore uploads receipt bytes to blob storage and returns a
	// retrievable URL. Only wired when the blob storage variant is active;
	// the default design inlines receipts as base64 data URLs.
	ReceiptStore interface {
		Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	}

	// Notifier is told about every successful submission creation.
	// Implementations are best-effort side channels; failures are logged,
	// never retried and never surfaced to the submitting user.
	Notifier interface {
		SubmissionCreated(ctx context.Context, sub Submission)
	}

	Service struct {
		repo      Repository
		receipts  ReceiptStore // nil => inline base64
		notifiers []Notifier
		logger    core.Logger
	}
)

func NewService(repo Repository, receipts ReceiptStore, logger core.Logger, notifiers ...Notifier) *Service {
	return &Service{
		repo:      repo,
		receipts:  receipts,
		notifiers: notifiers,
		logger:    logger,
	}
}

// Create persists a new intake record. The creation timestamp is stamped at
// encoding completion, status starts as pending and the submitter identity is
// the anonymous placeholder. Notifiers are fanned out after the write without
// blocking the caller.
func (svc *Service) Create(ctx context.Context, ns NewSubmission) (Submission, error) {
	now := time.Now().UTC()
	sub := Submission{
		WordpressURL:      ns.WordpressURL,
		WordpressUsername: ns.WordpressUsername,
		WordpressPassword: ns.WordpressPassword,
		WhatsappNumber:    ns.WhatsappNumber,
		Package:           ns.Package,
		NetworkCode:       ns.NetworkCode,
		ReceiptFileName:   ns.ReceiptName,
		ReceiptFileType:   ns.contentType(),
		CreatedAt:         now,
		UserID:            AnonymousUserID,
		Status:            StatusPending,
	}

	if svc.receipts != nil {
		key := fmt.Sprintf("receipts/%d-%s", now.UnixMilli(), ns.ReceiptName)
		url, err := svc.receipts.Save(ctx, key, ns.ReceiptData, sub.ReceiptFileType)
		if err != nil {
			return Submission{}, errors.Wrap(err, "uploading receipt")
		}
		sub.ReceiptURL = url
	} else {
		sub.ReceiptFile = ns.dataURL()
	}

	sub, err := svc.repo.CreateSubmission(ctx, sub)
	if err != nil {
		return Submission{}, errors.Wrap(err, "creating submission")
	}

	// fire-and-forget; the user-facing write already succeeded
	for _, n := range svc.notifiers {
		go n.SubmissionCreated(context.Background(), sub)
	}
	return sub, nil
}

// QueryAll returns every submission ordered by creation time descending.
// Records with missing timestamps sort last (treated as oldest).
func (svc *Service) QueryAll(ctx context.Context) ([]Submission, error) {
	subs, err := svc.repo.QueryAllSubmissions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[j].CreatedAt.IsZero() {
			return !subs[i].CreatedAt.IsZero()
		}
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(ctx, id)
}

// UpdateStatus overwrites only the status field. Transitions are permissive:
// any known state is reachable from any other, including itself.
func (svc *Service) UpdateStatus(ctx context.Context, id string, status Status) (Submission, error) {
	if !status.IsValid() {
		return Submission{}, core.NewValidationError(nil, core.FieldError{
			Field: "status",
			Error: fmt.Sprintf("unknown status %q", status),
		})
	}
	return svc.repo.UpdateSubmissionStatus(ctx, id, status)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteSubmissionsByID(ctx, ids...)
}
