package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/debtwise/debtwise-backend/internal/errs"
	"github.com/debtwise/debtwise-backend/internal/models"
	"github.com/debtwise/debtwise-backend/pkg/logger"
)

// contactCrypto encrypts counterparty contact details at rest.
type contactCrypto interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

type obligationStore struct {
	client *firestore.Client
	crypto contactCrypto
}

func NewObligationStore(client *firestore.Client, crypto contactCrypto) *obligationStore {
	return &obligationStore{client: client, crypto: crypto}
}

func (s *obligationStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("obligations")
}

func (s *obligationStore) Create(ctx context.Context, uid string, o *models.Obligation) error {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	sealed, err := s.sealContact(ctx, *o)
	if err != nil {
		return err
	}
	if _, err := s.collection(uid).Doc(o.ObligationID).Set(ctx, sealed); err != nil {
		return errs.NewDatabaseError("create", "failed to create obligation", err)
	}
	return nil
}

func (s *obligationStore) Get(ctx context.Context, uid, obligationID string) (*models.Obligation, error) {
	doc, err := s.collection(uid).Doc(obligationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("obligation not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get obligation", err)
	}
	var o models.Obligation
	if err := doc.DataTo(&o); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse obligation data", err)
	}
	if err := s.openContact(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all of a user's obligations ordered by due date.
func (s *obligationStore) List(ctx context.Context, uid string) ([]*models.Obligation, error) {
	iter := s.collection(uid).OrderBy("dueDate", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*models.Obligation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list obligations", err)
		}
		var o models.Obligation
		if err := doc.DataTo(&o); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse obligation data", err)
		}
		if err := s.openContact(ctx, &o); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, nil
}

func (s *obligationStore) Update(ctx context.Context, uid string, o *models.Obligation) error {
	o.UpdatedAt = time.Now()

	sealed, err := s.sealContact(ctx, *o)
	if err != nil {
		return err
	}
	if _, err := s.collection(uid).Doc(o.ObligationID).Set(ctx, sealed); err != nil {
		return errs.NewDatabaseError("update", "failed to update obligation", err)
	}
	return nil
}

func (s *obligationStore) Delete(ctx context.Context, uid, obligationID string) error {
	if _, err := s.collection(uid).Doc(obligationID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete obligation", err)
	}
	return nil
}

// ListOverdue returns active obligations whose due date is before today.
// Contact details stay sealed; the sweeper has no use for them.
func (s *obligationStore) ListOverdue(ctx context.Context, uid, today string) ([]*models.Obligation, error) {
	iter := s.collection(uid).
		Where("status", "==", models.StatusActive).
		Where("dueDate", "<", today).
		Documents(ctx)
	defer iter.Stop()

	var out []*models.Obligation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list overdue obligations", err)
		}
		var o models.Obligation
		if err := doc.DataTo(&o); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse obligation data", err)
		}
		out = append(out, &o)
	}
	return out, nil
}

type bulkStatusJob struct {
	obligationID string
	job          *firestore.BulkWriterJob
}

// MarkLateBatch flips the given obligations to late in one BulkWriter pass.
func (s *obligationStore) MarkLateBatch(ctx context.Context, uid string, obligationIDs []string) error {
	if len(obligationIDs) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]bulkStatusJob, 0, len(obligationIDs))
	for _, id := range obligationIDs {
		j, err := bw.Update(coll.Doc(id), []firestore.Update{
			{Path: "status", Value: models.StatusLate},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return errs.NewDatabaseError("update", "failed to schedule status update", err)
		}
		jobs = append(jobs, bulkStatusJob{obligationID: id, job: j})
	}
	bw.End()

	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error("failed to mark obligation late", "obligation_id", entry.obligationID, "error", err)
			return errs.NewDatabaseError("update", "failed to mark obligation late", err)
		}
	}
	return nil
}

func (s *obligationStore) sealContact(ctx context.Context, o models.Obligation) (models.Obligation, error) {
	if o.Counterparty.Contact == "" || s.crypto == nil {
		return o, nil
	}
	sealed, err := s.crypto.Encrypt(ctx, o.Counterparty.Contact)
	if err != nil {
		return o, errs.NewDatabaseError("create", "failed to encrypt counterparty contact", err)
	}
	o.Counterparty.Contact = sealed
	return o, nil
}

func (s *obligationStore) openContact(ctx context.Context, o *models.Obligation) error {
	if o.Counterparty.Contact == "" || s.crypto == nil {
		return nil
	}
	plain, err := s.crypto.Decrypt(ctx, o.Counterparty.Contact)
	if err != nil {
		return errs.NewDatabaseError("read", "failed to decrypt counterparty contact", err)
	}
	o.Counterparty.Contact = plain
	return nil
}
