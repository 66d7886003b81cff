package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
)

// RecommendationAlgorithm names the scoring reported in the response meta
const RecommendationAlgorithm = "v3_affinity_cooccurrence"

// Candidate sources, in the order they are tried
const (
	SourceCooccurrence     = "cooccurrence"
	SourceCategoryAffinity = "category_affinity"
	SourceBrandAffinity    = "brand_affinity"
	SourceTrendingViews    = "trending_views"
	SourcePopular          = "popular"
)

const (
	maxActivityEvents   = 200
	maxInterestSeeds    = 20
	maxSimilarities     = 1000
	maxCooccurrence     = 300
	topCategoryCount    = 5
	topBrandCount       = 5
	topTagCount         = 15
	reportedTagCount    = 10
	minCandidateFetch   = 40
	candidatesPerItem   = 8
	cooccurrencePerItem = 10
	minCooccurrence     = 120
)

// RecommendationMeta explains how a recommendation list was built
type RecommendationMeta struct {
	Algorithm               string    `json:"algorithm"`
	Source                  string    `json:"source"`
	RequestID               string    `json:"request_id"`
	GeneratedAt             time.Time `json:"generated_at"`
	TopCategories           []string  `json:"top_categories"`
	TopBrands               []string  `json:"top_brands"`
	TopTags                 []string  `json:"top_tags"`
	SeenCount               int       `json:"seen_count"`
	CooccurrenceSeedCount   int       `json:"cooccurrence_seed_count"`
	CooccurrenceScoredCount int       `json:"cooccurrence_scored_count"`
}

// RecommendationsResponse is a personalized product list
type RecommendationsResponse struct {
	UserID string             `json:"user_id"`
	Items  []ProductResponse  `json:"items"`
	Meta   RecommendationMeta `json:"meta"`
}

// candidateSet collects candidate products once each, keeping the order in
// which sources produced them
type candidateSet struct {
	products []catalog.Product
	ids      map[string]bool
	sources  []string
}

func (c *candidateSet) add(source string, products []catalog.Product) {
	if len(products) == 0 {
		return
	}
	c.sources = append(c.sources, source)
	for _, p := range products {
		if p.ID == "" || c.ids[p.ID] {
			continue
		}
		c.ids[p.ID] = true
		c.products = append(c.products, p)
	}
}

// Recommend ranks in-stock products the user has not interacted with yet.
//
// Candidates come from products similar to the ones the user showed
// interest in, then from their favorite categories and brands. Without any
// of those the most viewed products are used, then the most reviewed.
// Failures to read behavioral signals only narrow the candidates; failures
// to read products are returned.
func (s *ProductService) Recommend(ctx context.Context, userID string, limit int) (*RecommendationsResponse, error) {
	limit = ClampLimit(limit)
	now := s.now().UTC()
	log := s.logger.With(zap.String("user_id", userID))

	events, err := s.signals.ProductEvents(ctx, userID, maxActivityEvents)
	if err != nil {
		log.Warn("Product activity unavailable for recommendations", zap.Error(err))
		events = nil
	}

	interacted := make([]string, 0, len(events))
	for _, evt := range events {
		if catalog.IsProductID(evt.ProductID) {
			interacted = append(interacted, evt.ProductID)
		}
	}
	interactedProducts := make(map[string]catalog.Product)
	if len(interacted) > 0 {
		products, err := s.products.List(ctx, catalog.ProductQuery{
			IDs:             dedupe(interacted),
			IncludeInactive: true,
		})
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			interactedProducts[p.ID] = p
		}
	}

	affinity := catalog.NewAffinity(now, events, interactedProducts)
	topCategories := catalog.TopKeys(affinity.Categories, topCategoryCount)
	topBrands := catalog.TopKeys(affinity.Brands, topBrandCount)
	topTags := catalog.TopKeys(affinity.Tags, topTagCount)
	topTagSet := make(map[string]bool, len(topTags))
	for _, tag := range topTags {
		topTagSet[tag] = true
	}

	fetchLimit := max(limit*candidatesPerItem, minCandidateFetch)
	seeds := catalog.TopKeys(affinity.Interest, maxInterestSeeds)

	trending := make(map[string]int)
	views, err := s.signals.TopViewed(ctx, fetchLimit)
	if err != nil {
		log.Warn("Trending views unavailable for recommendations", zap.Error(err))
	}
	trendingIDs := make([]string, 0, len(views))
	for _, v := range views {
		if catalog.IsProductID(v.ProductID) {
			trending[v.ProductID] = v.Views
			trendingIDs = append(trendingIDs, v.ProductID)
		}
	}

	cooccurrence := map[string]float64{}
	if len(seeds) > 0 {
		similarities, err := s.signals.SimilarTo(ctx, seeds, maxSimilarities)
		if err != nil {
			log.Warn("Product similarities unavailable for recommendations", zap.Error(err))
		} else {
			cooccurrence = affinity.Cooccurrence(similarities)
		}
	}

	candidates := &candidateSet{ids: make(map[string]bool)}
	if len(cooccurrence) > 0 {
		n := min(max(fetchLimit, limit*cooccurrencePerItem, minCooccurrence), maxCooccurrence)
		products, err := s.products.List(ctx, catalog.ProductQuery{
			IDs:   catalog.TopKeys(cooccurrence, n),
			Limit: n,
		})
		if err != nil {
			return nil, err
		}
		candidates.add(SourceCooccurrence, products)
	}
	if len(topCategories) > 0 {
		products, err := s.products.List(ctx, catalog.ProductQuery{
			CategoryIDs: topCategories,
			Order:       catalog.OrderByRating,
			Limit:       fetchLimit,
		})
		if err != nil {
			return nil, err
		}
		candidates.add(SourceCategoryAffinity, products)
	}
	if len(topBrands) > 0 {
		products, err := s.products.List(ctx, catalog.ProductQuery{
			Brands: topBrands,
			Order:  catalog.OrderByRating,
			Limit:  fetchLimit,
		})
		if err != nil {
			return nil, err
		}
		candidates.add(SourceBrandAffinity, products)
	}
	if len(candidates.products) == 0 && len(trendingIDs) > 0 {
		products, err := s.products.List(ctx, catalog.ProductQuery{
			IDs:   trendingIDs,
			Limit: fetchLimit,
		})
		if err != nil {
			return nil, err
		}
		candidates.add(SourceTrendingViews, products)
	}
	if len(candidates.products) == 0 {
		products, err := s.products.List(ctx, catalog.ProductQuery{
			Order: catalog.OrderByPopularity,
			Limit: fetchLimit,
		})
		if err != nil {
			return nil, err
		}
		candidates.add(SourcePopular, products)
	}

	type scoredProduct struct {
		product catalog.Product
		score   float64
	}
	scored := make([]scoredProduct, 0, len(candidates.products))
	for _, p := range candidates.products {
		if affinity.HasSeen(p.ID) || !p.InStock() {
			continue
		}
		scored = append(scored, scoredProduct{
			product: p,
			score:   affinity.Score(p, topTagSet, trending[p.ID], cooccurrence[p.ID]),
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].product.ID < scored[j].product.ID
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	items := make([]ProductResponse, 0, len(scored))
	for _, sp := range scored {
		items = append(items, toProductResponse(sp.product))
	}

	source := SourcePopular
	if len(candidates.sources) > 0 {
		source = strings.Join(candidates.sources, "+")
	}
	reportedTags := topTags
	if len(reportedTags) > reportedTagCount {
		reportedTags = reportedTags[:reportedTagCount]
	}

	resp := &RecommendationsResponse{
		UserID: userID,
		Items:  items,
		Meta: RecommendationMeta{
			Algorithm:               RecommendationAlgorithm,
			Source:                  source,
			RequestID:               s.newID(),
			GeneratedAt:             now,
			TopCategories:           topCategories,
			TopBrands:               topBrands,
			TopTags:                 reportedTags,
			SeenCount:               len(affinity.Seen),
			CooccurrenceSeedCount:   len(seeds),
			CooccurrenceScoredCount: len(cooccurrence),
		},
	}
	log.Debug("Recommendations built",
		zap.String("source", source),
		zap.Int("items", len(items)),
		zap.Int("candidates", len(candidates.products)),
	)
	return resp, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
