package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
)

// productDocument is the stored shape of products/{id}. CreatedAt is left untyped because older
// documents hold epoch milliseconds instead of a timestamp.
type productDocument struct {
	Title         string   `firestore:"title"`
	Description   string   `firestore:"description"`
	Price         float64  `firestore:"price"`
	DiscountPrice float64  `firestore:"discountPrice"`
	Image         string   `firestore:"image"`
	Stock         int      `firestore:"stock"`
	Category      string   `firestore:"category"`
	Keywords      []string `firestore:"keywords"`
	BrandName     string   `firestore:"brandName"`
	SellerID      string   `firestore:"sellerId"`
	CreatedAt     any      `firestore:"createdAt"`
}

func (d *productDocument) toEntity(id string) *entity.Product {
	return &entity.Product{
		ID:            id,
		Title:         d.Title,
		Description:   d.Description,
		Price:         d.Price,
		DiscountPrice: d.DiscountPrice,
		Image:         d.Image,
		Stock:         d.Stock,
		Category:      d.Category,
		Keywords:      d.Keywords,
		BrandName:     d.BrandName,
		SellerID:      d.SellerID,
		CreatedAt:     asTime(d.CreatedAt),
	}
}

type productRepository struct {
	client *firestore.Client
}

// NewProductRepository creates a Firestore-backed product repository.
func NewProductRepository(client *firestore.Client) repository.ProductRepository {
	return &productRepository{client: client}
}

func (repo *productRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(productsCollection).Doc(id)
}

func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := repo.doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return decodeProduct(snap)
}

func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.client.Collection(productsCollection).Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(snaps))
	for _, snap := range snaps {
		product, err := decodeProduct(snap)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if _, err := repo.doc(product.ID).Create(ctx, product); err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	if _, err := repo.doc(product.ID).Set(ctx, product); err != nil {
		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

func decodeProduct(snap *firestore.DocumentSnapshot) (*entity.Product, error) {
	var doc productDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode product %s", snap.Ref.ID)
	}

	return doc.toEntity(snap.Ref.ID), nil
}
