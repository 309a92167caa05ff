package mongodb

import (
	"souq/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed id %q in document", s)
		}
		out = append(out, id)
	}

	return out, nil
}

// setFields builds a $set document, converting UUID values to their string
// form so usecases can pass entity-level values directly.
func setFields(fields map[string]any) bson.M {
	set := bson.M{}
	for name, value := range fields {
		if id, ok := value.(uuid.UUID); ok {
			set[name] = id.String()

			continue
		}
		set[name] = value
	}

	return bson.M{"$set": set}
}
