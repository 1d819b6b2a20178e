package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/contracts"
	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/domain"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_flash_sale"
	"github.com/anastacio2001/kzstore-sub000/internal/models/m_product"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/query"
)

// CatalogRepo implements Catalog over the catalog-owned Spanner tables.
type CatalogRepo struct {
	productModel   *m_product.Model
	flashSaleModel *m_flash_sale.Model
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo() contracts.Catalog {
	return &CatalogRepo{
		productModel:   m_product.NewModel(),
		flashSaleModel: m_flash_sale.NewModel(),
	}
}

// GetProduct loads a product row through tx.
func (r *CatalogRepo) GetProduct(ctx context.Context, tx contracts.Tx, productID string) (*domain.Product, error) {
	row, err := tx.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, r.productModel.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return productDataToDomain(&data), nil
}

// GetActiveFlashSale loads the active sale linked to a product, nil when
// none exists. Inactive sales are invisible to checkout by contract.
func (r *CatalogRepo) GetActiveFlashSale(ctx context.Context, tx contracts.Tx, productID string) (*domain.FlashSale, error) {
	stmt := query.From(m_flash_sale.TableName).
		Select(r.flashSaleModel.Columns()...).
		Where(query.Eq(m_flash_sale.ProductID, productID)).
		Where(query.Eq(m_flash_sale.IsActive, true)).
		Limit(1).
		Build()

	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query flash sale: %w", err)
	}

	var data m_flash_sale.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse flash sale: %w", err)
	}

	return flashSaleDataToDomain(&data), nil
}

// GetFlashSale loads a sale row by primary key.
func (r *CatalogRepo) GetFlashSale(ctx context.Context, tx contracts.Tx, flashSaleID string) (*domain.FlashSale, error) {
	row, err := tx.ReadRow(ctx, m_flash_sale.TableName, spanner.Key{flashSaleID}, r.flashSaleModel.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrFlashSaleNotFound
		}
		return nil, fmt.Errorf("failed to read flash sale: %w", err)
	}

	var data m_flash_sale.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse flash sale: %w", err)
	}

	return flashSaleDataToDomain(&data), nil
}

// UpdateStockMut writes the product stock column.
func (r *CatalogRepo) UpdateStockMut(productID string, stock int64) *spanner.Mutation {
	return r.productModel.UpdateStockMut(productID, stock)
}

// UpdateStockSoldMut writes the flash-sale stock_sold counter.
func (r *CatalogRepo) UpdateStockSoldMut(flashSaleID string, stockSold int64) *spanner.Mutation {
	return r.flashSaleModel.UpdateStockSoldMut(flashSaleID, stockSold)
}

func productDataToDomain(data *m_product.Data) *domain.Product {
	p := &domain.Product{
		ID:           data.ProductID,
		Name:         data.Name,
		BasePrice:    domain.NewMoney(data.BasePrice),
		Stock:        data.Stock,
		WeightKG:     data.WeightKG,
		ShippingMode: domain.ShippingMode(data.ShippingMode),
		ShippingCost: domain.NewMoney(data.ShippingCost),
	}
	if data.FlashSaleID.Valid {
		p.FlashSaleID = data.FlashSaleID.StringVal
	}
	if data.PreOrderDepositPct.Valid {
		p.PreOrder = &domain.PreOrderConfig{
			DepositPercent: data.PreOrderDepositPct.Int64,
		}
		if data.PreOrderArrival.Valid {
			p.PreOrder.EstimatedArrival = data.PreOrderArrival.Time
		}
	}
	return p
}

func flashSaleDataToDomain(data *m_flash_sale.Data) *domain.FlashSale {
	return &domain.FlashSale{
		ID:                 data.FlashSaleID,
		ProductID:          data.ProductID,
		SalePrice:          domain.NewMoney(data.SalePrice),
		DiscountPercentage: data.DiscountPercentage,
		StockLimit:         data.StockLimit,
		StockSold:          data.StockSold,
		StartDate:          data.StartDate.UTC(),
		EndDate:            data.EndDate.UTC(),
		Active:             data.IsActive,
	}
}
