package graph

import (
	"fmt"
	"time"

	"artisan-be/internal/cart"
	"artisan-be/internal/graph/model"
	"artisan-be/internal/inventory"
	"artisan-be/internal/order"
	"artisan-be/internal/product"
)

func MapCartToGraphQL(v *cart.CartView) *model.Cart {
	lines := make([]*model.CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, &model.CartLine{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       int32(l.Quantity),
			UnitPriceAtAdd: l.UnitPriceAtAdd,
			LineTotal:      l.LineTotal,
		})
	}

	return &model.Cart{
		Lines:     lines,
		Total:     v.Total,
		ItemCount: int32(v.ItemCount),
	}
}

func MapOrderToGraphQL(o *order.Order) *model.Order {
	lines := make([]*model.OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, &model.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    int32(l.Quantity),
			LineTotal:   l.LineTotal,
		})
	}

	return &model.Order{
		ID:              fmt.Sprint(o.ID),
		Number:          o.Number,
		Total:           o.Total,
		Status:          model.OrderStatus(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		PaymentRef:      o.PaymentRef,
		PlacedAt:        o.PlacedAt.Format(time.RFC3339),
		Lines:           lines,
	}
}

func MapProductToGraphQL(p *product.Product) *model.Product {
	return &model.Product{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Price:       p.Price,
		Status:      model.ProductStatus(p.Status),
		Description: p.Description,
		ImageURL:    p.ImageUrl,
	}
}

func MapStockToGraphQL(rec *inventory.Record) *model.StockRecord {
	return &model.StockRecord{
		ProductID:        rec.ProductID,
		QuantityOnHand:   int32(rec.QuantityOnHand),
		QuantityReserved: int32(rec.QuantityReserved),
		Available:        int32(rec.Available()),
		Unlimited:        rec.Unlimited,
	}
}
