package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/usecase"
	"himart/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	descriptionLimit  = 150
	minSearchLength   = 3
	searchBatchSize   = 100
	searchResultLimit = 5
	enrichConcurrency = 8
)

// Search weights
const (
	titleScore   = 3
	brandScore   = 2
	keywordScore = 1
)

type discoveryService struct {
	products repository.ProductRepository
	tracker  *engagementTracker
	images   *imageSigner
	logger   *slog.Logger
}

// DiscoveryServiceParams holds dependencies for DiscoveryService, injected by Fx.
type DiscoveryServiceParams struct {
	fx.In

	Products    repository.ProductRepository
	Engagements repository.EngagementRepository
	Sellers     repository.SellerRepository
	Blobs       service.BlobStore
	Logger      *slog.Logger
}

// NewDiscoveryService creates a new discovery service instance.
func NewDiscoveryService(params DiscoveryServiceParams) usecase.DiscoveryUsecase {
	images := newImageSigner(params.Blobs, params.Logger)

	return &discoveryService{
		products: params.Products,
		tracker:  newEngagementTracker(params.Engagements, params.Sellers, images, params.Logger),
		images:   images,
		logger:   params.Logger,
	}
}

func (srv *discoveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of the catalog in store order.
func (srv *discoveryService) List(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	return srv.fetchPage(ctx, input)
}

// Trending orders the fetched page by impressions plus clicks.
func (srv *discoveryService) Trending(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	page, err := srv.fetchPage(ctx, input)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(page, func(i, j int) bool {
		return page[i].Popularity() > page[j].Popularity()
	})

	return page, nil
}

// Latest orders the fetched page by creation time, newest first.
func (srv *discoveryService) Latest(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	page, err := srv.fetchPage(ctx, input)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(page, func(i, j int) bool {
		return page[i].CreatedAt.After(page[j].CreatedAt)
	})

	return page, nil
}

// Discounted keeps the discounted products of the fetched page. It may return fewer than limit.
func (srv *discoveryService) Discounted(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	page, err := srv.fetchPage(ctx, input)
	if err != nil {
		return nil, err
	}

	return filterDetails(page, func(d *entity.ProductDetail) bool {
		return d.IsDiscounted()
	}), nil
}

// UserChoices keeps products of the fetched page whose title or category contains a preference.
func (srv *discoveryService) UserChoices(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	page, err := srv.fetchPage(ctx, input)
	if err != nil {
		return nil, err
	}

	return filterDetails(page, func(d *entity.ProductDetail) bool {
		for _, pref := range input.Preferences {
			if pref == "" {
				continue
			}
			if util.ContainsFold(d.Title, pref) || util.ContainsFold(d.Category, pref) {
				return true
			}
		}

		return false
	}), nil
}

type scoredProduct struct {
	product *entity.Product
	score   int
}

// Search scores a bounded batch of products against query and returns the best matches.
func (srv *discoveryService) Search(ctx context.Context, query string) ([]*entity.ProductSummary, error) {
	query = strings.ToLower(query)
	if len([]rune(query)) < minSearchLength {
		return nil, domainerrors.ErrQueryTooShort
	}

	batch, err := srv.products.List(ctx, repository.ProductFilter{Limit: searchBatchSize})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	scored := make([]scoredProduct, 0, len(batch))
	for _, product := range batch {
		if score := searchScore(product, query); score > 0 {
			scored = append(scored, scoredProduct{product: product, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > searchResultLimit {
		scored = scored[:searchResultLimit]
	}

	results := make([]*entity.ProductSummary, 0, len(scored))
	for _, s := range scored {
		results = append(results, &entity.ProductSummary{
			ID:    s.product.ID,
			Title: s.product.Title,
			Image: srv.images.URL(ctx, s.product.Image),
		})
	}

	srv.log(ctx).Debug("Search completed", slog.String("query", query), slog.Int("results", len(results)))

	return results, nil
}

func searchScore(product *entity.Product, query string) int {
	score := 0
	if util.ContainsFold(product.Title, query) {
		score += titleScore
	}
	if util.ContainsFold(product.BrandName, query) {
		score += brandScore
	}
	for _, keyword := range product.Keywords {
		if util.ContainsFold(keyword, query) {
			score += keywordScore

			break
		}
	}

	return score
}

// fetchPage loads one offset page and enriches every product concurrently.
// Limit is capped at MaxLimit so the offset stays bounded.
func (srv *discoveryService) fetchPage(ctx context.Context, input usecase.ListInput) ([]*entity.ProductDetail, error) {
	page, limit := input.Page, input.Limit
	if page < 1 {
		page = usecase.DefaultPage
	}
	if limit < 1 {
		limit = usecase.DefaultLimit
	}
	limit = min(limit, usecase.MaxLimit)
	if page > usecase.MaxPage {
		return []*entity.ProductDetail{}, nil
	}

	products, err := srv.products.List(ctx, repository.ProductFilter{
		Category: input.Category,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	details := make([]*entity.ProductDetail, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, product := range products {
		g.Go(func() error {
			product.Description = util.Truncate(product.Description, descriptionLimit)
			details[i] = srv.tracker.Detail(gctx, product)
			if input.Requester != nil {
				srv.tracker.TrackOnce(gctx, entity.EngagementImpression, product.ID, input.Requester.UserID)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to enrich products")
	}

	return details, nil
}

func filterDetails(details []*entity.ProductDetail, keep func(*entity.ProductDetail) bool) []*entity.ProductDetail {
	filtered := make([]*entity.ProductDetail, 0, len(details))
	for _, d := range details {
		if keep(d) {
			filtered = append(filtered, d)
		}
	}

	return filtered
}
