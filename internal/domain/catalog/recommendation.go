package catalog

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action is a tracked product interaction
type Action string

const (
	ActionView           Action = "product_view"
	ActionCartAdd        Action = "cart_add"
	ActionFavoriteAdd    Action = "favorite_add"
	ActionCartRemove     Action = "cart_remove"
	ActionFavoriteRemove Action = "favorite_remove"
)

var actionWeights = map[Action]float64{
	ActionFavoriteAdd:    5,
	ActionCartAdd:        4,
	ActionView:           1,
	ActionFavoriteRemove: -2,
	ActionCartRemove:     -1,
}

// TrackedActions lists the interactions that feed recommendations
func TrackedActions() []Action {
	return []Action{ActionView, ActionCartAdd, ActionFavoriteAdd, ActionCartRemove, ActionFavoriteRemove}
}

// Weight is the interest an action expresses; removals count against the product
func (a Action) Weight() float64 {
	return actionWeights[a]
}

// InterestHalfLife is the age at which an interaction counts half
const InterestHalfLife = 14 * 24 * time.Hour

// ActivityEvent is one product interaction of a user. At is zero when the
// time is unknown.
type ActivityEvent struct {
	ProductID string
	Action    Action
	At        time.Time
}

// Recency is the decay factor of an interaction at the given time
func Recency(now, at time.Time) float64 {
	if at.IsZero() {
		return 1
	}
	age := now.Sub(at)
	if age < 0 {
		age = 0
	}
	return math.Pow(0.5, float64(age)/float64(InterestHalfLife))
}

// IsProductID reports whether id has the uuid form of product keys
func IsProductID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Affinity is what a user's interactions say about their taste
type Affinity struct {
	Categories map[string]float64
	Brands     map[string]float64
	Tags       map[string]float64
	// Interest holds the positive interest per product
	Interest map[string]float64
	// Seen lists the products the user interacted with, most recent first
	Seen []string
}

// NewAffinity scores events against the products they refer to. Events on
// ids that are not product ids are ignored; products missing from products
// only contribute to Interest.
func NewAffinity(now time.Time, events []ActivityEvent, products map[string]Product) *Affinity {
	a := &Affinity{
		Categories: make(map[string]float64),
		Brands:     make(map[string]float64),
		Tags:       make(map[string]float64),
		Interest:   make(map[string]float64),
	}
	seen := make(map[string]bool)
	for _, evt := range events {
		if !IsProductID(evt.ProductID) {
			continue
		}
		if !seen[evt.ProductID] {
			seen[evt.ProductID] = true
			a.Seen = append(a.Seen, evt.ProductID)
		}

		weight := evt.Action.Weight()
		if weight == 0 {
			continue
		}
		w := weight * Recency(now, evt.At)
		if w > 0 {
			a.Interest[evt.ProductID] += w
		}

		p, ok := products[evt.ProductID]
		if !ok {
			continue
		}
		if IsProductID(p.CategoryID) {
			a.Categories[p.CategoryID] += w
		}
		if brand := strings.TrimSpace(p.Brand); brand != "" {
			a.Brands[brand] += w
		}
		if tags := cleanTags(p.Tags); len(tags) > 0 {
			share := w / float64(len(tags))
			for _, tag := range tags {
				a.Tags[tag] += share
			}
		}
	}
	return a
}

// HasSeen reports whether the user interacted with the product
func (a *Affinity) HasSeen(productID string) bool {
	for _, id := range a.Seen {
		if id == productID {
			return true
		}
	}
	return false
}

// Cooccurrence scores the products similar to the ones the user is
// interested in. Products the user already interacted with are skipped.
func (a *Affinity) Cooccurrence(similarities []Similarity) map[string]float64 {
	scores := make(map[string]float64)
	for _, s := range similarities {
		if !IsProductID(s.ProductID) || !IsProductID(s.SimilarProductID) {
			continue
		}
		if a.HasSeen(s.SimilarProductID) {
			continue
		}
		if s.Score <= 0 || s.CommonUsers <= 0 {
			continue
		}
		strength := a.Interest[s.ProductID]
		if strength <= 0 {
			continue
		}
		scores[s.SimilarProductID] += s.Score * strength * math.Log1p(float64(s.CommonUsers))
	}
	return scores
}

// Score ranks a candidate product for the user. trendingViews and
// cooccurrence are the candidate's signals, topTags the user's strongest tags.
func (a *Affinity) Score(p Product, topTags map[string]bool, trendingViews int, cooccurrence float64) float64 {
	var tagWeight float64
	var tagOverlap int
	for _, tag := range cleanTags(p.Tags) {
		tagWeight += a.Tags[tag]
		if topTags[tag] {
			tagOverlap++
		}
	}

	base := p.Rating*2 + math.Log1p(float64(max(0, p.ReviewsCount)))
	if p.IsFeatured {
		base++
	}
	return base +
		a.Categories[p.CategoryID]*3 +
		a.Brands[strings.TrimSpace(p.Brand)]*2 +
		tagWeight*1.5 +
		float64(tagOverlap)*0.25 +
		math.Log1p(float64(max(0, trendingViews)))*0.5 +
		cooccurrence*2
}

// TopKeys returns up to k keys with a positive score, best first. Ties are
// broken by key so that results are stable.
func TopKeys(scores map[string]float64, k int) []string {
	keys := make([]string, 0, len(scores))
	for key, score := range scores {
		if score > 0 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] != scores[keys[j]] {
			return scores[keys[i]] > scores[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
