package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/server/http/dto"
	"github.com/polkiloo/stockease/internal/usecase"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(s *model.Session) dto.SessionResponse {
	return dto.SessionResponse{Token: s.Token, UserID: s.UserID, ExpiresAt: s.ExpiresAt}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       money(p.Price),
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
	}
}

func toCartItemResponse(item model.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:        item.ID,
		Product:   toProductResponse(item.Product),
		Quantity:  item.Quantity,
		LineTotal: money(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		AddedAt:   item.AddedAt,
	}
}

func toSummaryResponse(s pricing.Summary) dto.CartSummaryResponse {
	return dto.CartSummaryResponse{
		DeliveryOption: s.Option.Code,
		DeliveryLabel:  s.Option.Label,
		ItemCount:      s.ItemCount,
		Subtotal:       money(s.Subtotal),
		Tax:            money(s.Tax),
		DeliveryFee:    money(s.DeliveryFee),
		Total:          money(s.Total),
	}
}

func toDeliveryOptionResponse(o pricing.DeliveryOption) dto.DeliveryOptionResponse {
	return dto.DeliveryOptionResponse{Code: o.Code, Label: o.Label, Fee: money(o.Fee)}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Number:         o.Number,
		Status:         string(o.Status),
		DeliveryOption: o.DeliveryOption,
		Subtotal:       money(o.Subtotal),
		Tax:            money(o.Tax),
		DeliveryFee:    money(o.DeliveryFee),
		Total:          money(o.Total),
		CreatedAt:      o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     money(it.Price),
		})
	}
	return resp
}

func toDeliveryResponse(t *usecase.TrackedDelivery) dto.DeliveryResponse {
	d := t.Delivery
	return dto.DeliveryResponse{
		OrderNumber:    d.OrderNumber,
		TrackingNumber: d.TrackingNumber,
		Status:         string(d.Status),
		Address:        d.Address,
		EstimatedAt:    d.EstimatedAt,
		DeliveredAt:    d.DeliveredAt,
		UpdatedAt:      d.UpdatedAt,
		Timeline:       t.Timeline,
	}
}

func toPaymentForm(f dto.PaymentForm) payment.Form {
	return payment.Form{
		CardholderName: f.CardholderName,
		CardNumber:     f.CardNumber,
		Expiry:         f.ExpiryDate,
		CVC:            f.CVC,
		Address:        f.Address,
	}
}

func fromPaymentForm(f payment.Form) dto.PaymentForm {
	return dto.PaymentForm{
		CardholderName: f.CardholderName,
		CardNumber:     f.CardNumber,
		ExpiryDate:     f.Expiry,
		CVC:            f.CVC,
		Address:        f.Address,
	}
}
