package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leanios/access-gate/internal/core/domain"
	"github.com/leanios/access-gate/internal/core/ports"
)

const collectionEmailLogs = "email_logs"

// EmailLogRepository implements ports.EmailLogRepository on the email_logs collection.
type EmailLogRepository struct {
	col *mongo.Collection
}

func NewEmailLogRepository(db *mongo.Database) *EmailLogRepository {
	return &EmailLogRepository{col: db.Collection(collectionEmailLogs)}
}

type emailLogDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	RecipientEmail string             `bson:"recipient_email"`
	Subject        string             `bson:"subject"`
	Body           string             `bson:"body"`
	Status         string             `bson:"status"`
	CampaignID     string             `bson:"campaign_id,omitempty"`
	SentBy         string             `bson:"sent_by,omitempty"`
	ErrorMessage   string             `bson:"error_message,omitempty"`
	SentAt         time.Time          `bson:"sent_at"`
}

// List returns a page of email logs, newest first, with the total matching count.
func (r *EmailLogRepository) List(ctx context.Context, f ports.EmailLogFilter) ([]*domain.EmailLog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := emailLogFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count email logs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetSkip(pageSkip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find email logs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []emailLogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode email logs: %w", err)
	}

	logs := make([]*domain.EmailLog, len(docs))
	for i, d := range docs {
		logs[i] = &domain.EmailLog{
			ID:             d.ID.Hex(),
			RecipientEmail: d.RecipientEmail,
			Subject:        d.Subject,
			Body:           d.Body,
			Status:         domain.EmailStatus(d.Status),
			CampaignID:     d.CampaignID,
			SentBy:         d.SentBy,
			ErrorMessage:   d.ErrorMessage,
			SentAt:         d.SentAt.UTC(),
		}
	}
	return logs, total, nil
}

// EnsureIndexes creates the indexes used by the listing filters.
func (r *EmailLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sent_at", Value: -1}}},
		{Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "sent_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

// pageSkip returns the number of documents before page, computed in int64.
func pageSkip(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	return int64(page-1) * int64(limit)
}

// emailLogFilter builds the query. User input is quoted before being used
// in a regular expression.
func emailLogFilter(f ports.EmailLogFilter) bson.M {
	filter := bson.M{}
	if f.Email != "" {
		filter["recipient_email"] = containsCI(f.Email)
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CampaignID != "" {
		filter["campaign_id"] = f.CampaignID
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"subject": containsCI(f.Search)},
			bson.M{"body": containsCI(f.Search)},
		}
	}
	return filter
}

func containsCI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
