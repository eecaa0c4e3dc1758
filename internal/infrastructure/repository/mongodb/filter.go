package mongodb

import (
	"fmt"
	"regexp"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productFilter translates a ProductQuery into a find filter. Clauses are
// merged into one document; if two clauses share a key they are combined
// under $and instead.
func productFilter(q domain.ProductQuery) (bson.D, error) {
	clauses := make([]bson.E, 0, len(q.Conditions))

	for _, c := range q.Conditions {
		switch c := c.(type) {
		case domain.TextMatch:
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(c.Term), Options: "i"}
			or := make(bson.A, 0, len(c.Fields))
			for _, f := range c.Fields {
				or = append(or, bson.D{{Key: string(f), Value: pattern}})
			}
			clauses = append(clauses, bson.E{Key: "$or", Value: or})
		case domain.FieldEquals:
			clauses = append(clauses, bson.E{Key: string(c.Field), Value: c.Value})
		case domain.PriceRange:
			bounds := bson.D{}
			if c.Min != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min})
			}
			if c.Max != nil {
				bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Max})
			}
			if len(bounds) > 0 {
				clauses = append(clauses, bson.E{Key: "price", Value: bounds})
			}
		default:
			return nil, fmt.Errorf("unsupported product condition %T", c)
		}
	}

	seen := make(map[string]bool, len(clauses))
	for _, e := range clauses {
		if seen[e.Key] {
			and := make(bson.A, len(clauses))
			for i, e := range clauses {
				and[i] = bson.D{e}
			}
			return bson.D{{Key: "$and", Value: and}}, nil
		}
		seen[e.Key] = true
	}

	return bson.D(clauses), nil
}
