package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	pkgAuth "github.com/polkiloo/stockease/internal/pkg/auth"
	"github.com/polkiloo/stockease/internal/pkg/payment"
	"github.com/polkiloo/stockease/internal/server/http/dto"
	"github.com/polkiloo/stockease/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/stockease/internal/test"
	"github.com/polkiloo/stockease/internal/test/facadestub"
	"github.com/polkiloo/stockease/internal/usecase"
)

var _ StorefrontFacade = facadestub.Storefront{}

func init() {
	gin.SetMode(gin.TestMode)
}

const testUserID int64 = 7

func asUser(c *gin.Context) {
	c.Set(middleware.UserIDContextKey, testUserID)
	c.Set(middleware.TokenContextKey, "token-7")
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
	return out
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestCurrentUserAndToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}
	if got := CurrentToken(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	asUser(c)
	if got := CurrentUserID(c); got != testUserID {
		t.Fatalf("expected %d, got %d", testUserID, got)
	}
	if got := CurrentToken(c); got != "token-7" {
		t.Fatalf("unexpected token %q", got)
	}
}

func TestAbortWithErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domainErrors.ErrNotFound, http.StatusNotFound, "not found"},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{pkgAuth.ErrInvalidToken, http.StatusUnauthorized, pkgAuth.ErrInvalidToken.Error()},
		{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domainErrors.ErrAlreadyExists, http.StatusConflict, "already exists"},
		{domainErrors.ErrEmptyCart, http.StatusUnprocessableEntity, "Your cart is empty."},
		{domainErrors.ErrCartChanged, http.StatusConflict, "Your cart changed during checkout. Review it and try again."},
		{domainErrors.ErrUnknownDeliveryOption, http.StatusUnprocessableEntity, "unknown delivery option"},
		{domainErrors.ErrInvalidQuantity, http.StatusBadRequest, "invalid quantity"},
		{domainErrors.ErrInvalidProduct, http.StatusBadRequest, "invalid product"},
		{domainErrors.ErrInvalidProfile, http.StatusBadRequest, "invalid profile"},
		{errors.New("db down"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) {
				abortWithError(c, tc.err)
			}, nil, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if body := decode[dto.ErrorResponse](t, resp); body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestAbortWithValidationErrors(t *testing.T) {
	err := payment.ValidationErrors{payment.FieldCVC: "CVC must be 3 digits"}
	resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) {
		abortWithError(c, err)
	}, nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	body := decode[dto.ValidationErrorResponse](t, resp)
	if body.Error != "validation failed" || body.Fields[payment.FieldCVC] == "" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	var got model.Registration
	handler := NewAuthHandler(facadestub.Storefront{RegisterFn: func(_ context.Context, reg model.Registration) (*model.Session, error) {
		got = reg
		return &model.Session{Token: "session-token", UserID: 3}, nil
	}})
	body := mustJSON(t, dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret", Role: "SELLER"})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got.Email != "ada@example.com" || got.Role != model.RoleSeller {
		t.Fatalf("unexpected registration %+v", got)
	}
	if header := resp.Header().Get("Authorization"); header != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", header)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "stockease_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named stockease_token")
	}
	if session := decode[dto.SessionResponse](t, resp); session.Token != "session-token" || session.UserID != 3 {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestAuthHandlerRegisterPassesRandomCredentials(t *testing.T) {
	email := testhelpers.RandomEmail()
	password := testhelpers.RandomASCIIString(16, 32)
	handler := NewAuthHandler(facadestub.Storefront{RegisterFn: func(_ context.Context, reg model.Registration) (*model.Session, error) {
		if reg.Email != email || reg.Password != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", reg.Email, reg.Password)
		}
		return &model.Session{Token: "session-token"}, nil
	}})
	body := mustJSON(t, dto.RegisterRequest{Name: "Ada", Email: email, Password: password})
	if resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{"bad json", nil, []byte("{"), http.StatusBadRequest},
		{"missing fields", domainErrors.ErrInvalidCredentials, []byte(`{}`), http.StatusBadRequest},
		{"duplicate", domainErrors.ErrAlreadyExists, []byte(`{"email":"a"}`), http.StatusConflict},
		{"internal", errors.New("boom"), []byte(`{"email":"a"}`), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(facadestub.Storefront{RegisterFn: func(context.Context, model.Registration) (*model.Session, error) {
				return nil, tt.err
			}})
			resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(facadestub.Storefront{LoginFn: func(_ context.Context, email, password string) (*model.Session, error) {
		if email != "ada@example.com" || password != "secret" {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return &model.Session{Token: "t", UserID: 1}, nil
	}})

	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil,
		mustJSON(t, dto.LoginRequest{Email: "ada@example.com", Password: "secret"}))
	if resp.Code != http.StatusOK || resp.Header().Get("Authorization") != "Bearer t" {
		t.Fatalf("unexpected login response %d %q", resp.Code, resp.Header().Get("Authorization"))
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil,
		mustJSON(t, dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerLogoutAndMe(t *testing.T) {
	var revoked string
	handler := NewAuthHandler(facadestub.Storefront{LogoutFn: func(_ context.Context, token string) error {
		revoked = token
		return nil
	}})

	resp := performRequest(t, http.MethodPost, "/logout", "/logout", handler.Logout, asUser, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if revoked != "token-7" {
		t.Fatalf("expected current token to be revoked, got %q", revoked)
	}

	resp = performRequest(t, http.MethodGet, "/me", "/me", handler.Me, asUser, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if user := decode[dto.UserResponse](t, resp); user.ID != testUserID || user.Role != "CUSTOMER" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthHandlerUpdateMe(t *testing.T) {
	var (
		gotUser int64
		got     model.ProfileUpdate
	)
	handler := NewAuthHandler(facadestub.Storefront{ProfileFn: func(_ context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error) {
		gotUser, got = userID, upd
		return &model.User{ID: userID, Name: "Ada", Email: "ada@example.com", Address: *upd.Address, Role: model.RoleCustomer}, nil
	}})

	resp := performRequest(t, http.MethodPut, "/me", "/me", handler.UpdateMe, asUser, []byte(`{"address":"1 Main St"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotUser != testUserID || got.Name != nil || got.Email != nil || got.Address == nil || *got.Address != "1 Main St" {
		t.Fatalf("unexpected update for %d: %+v", gotUser, got)
	}
	if user := decode[dto.UserResponse](t, resp); user.Address != "1 Main St" {
		t.Fatalf("unexpected user %+v", user)
	}

	if resp := performRequest(t, http.MethodPut, "/me", "/me", handler.UpdateMe, asUser, []byte(`{`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	failures := map[error]int{
		domainErrors.ErrInvalidProfile: http.StatusBadRequest,
		domainErrors.ErrAlreadyExists:  http.StatusConflict,
	}
	for failure, status := range failures {
		failing := NewAuthHandler(facadestub.Storefront{ProfileFn: func(context.Context, int64, model.ProfileUpdate) (*model.User, error) {
			return nil, failure
		}})
		if resp := performRequest(t, http.MethodPut, "/me", "/me", failing.UpdateMe, asUser, []byte(`{"email":"x@y.z"}`)); resp.Code != status {
			t.Fatalf("%v: expected %d, got %d", failure, status, resp.Code)
		}
	}
}

func TestProductHandlerList(t *testing.T) {
	var filter model.ProductFilter
	handler := NewProductHandler(facadestub.Storefront{ProductsFn: func(_ context.Context, f model.ProductFilter) ([]model.Product, error) {
		filter = f
		return []model.Product{facadestub.SampleProduct()}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/products", "/products?category=home&q=lamp", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if filter.Category != "home" || filter.Query != "lamp" {
		t.Fatalf("unexpected filter %+v", filter)
	}
	products := decode[[]dto.ProductResponse](t, resp)
	if len(products) != 1 || products[0].Price != "25.00" {
		t.Fatalf("unexpected products %+v", products)
	}

	empty := NewProductHandler(facadestub.Storefront{ProductsFn: func(context.Context, model.ProductFilter) ([]model.Product, error) {
		return nil, nil
	}})
	resp = performRequest(t, http.MethodGet, "/products", "/products", empty.List, nil, nil)
	if resp.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestProductHandlerGet(t *testing.T) {
	handler := NewProductHandler(facadestub.Storefront{})
	if resp := performRequest(t, http.MethodGet, "/products/:id", "/products/1", handler.Get, nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodGet, "/products/:id", "/products/99", handler.Get, nil, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodGet, "/products/:id", "/products/abc", handler.Get, nil, nil); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	handler := NewProductHandler(facadestub.Storefront{})
	resp := performRequest(t, http.MethodPost, "/products", "/products", handler.Create, asUser,
		[]byte(`{"name":"Chair","category":"home","price":"49.5"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if product := decode[dto.ProductResponse](t, resp); product.Price != "49.50" {
		t.Fatalf("unexpected price %q", product.Price)
	}

	forbidden := NewProductHandler(facadestub.Storefront{CreateProductFn: func(context.Context, int64, model.NewProduct) (*model.Product, error) {
		return nil, domainErrors.ErrForbidden
	}})
	resp = performRequest(t, http.MethodPost, "/products", "/products", forbidden.Create, asUser, []byte(`{"name":"Chair","price":1}`))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestCartHandlerListAndSummary(t *testing.T) {
	handler := NewCartHandler(facadestub.Storefront{})

	resp := performRequest(t, http.MethodGet, "/cart", "/cart", handler.List, asUser, nil)
	items := decode[[]dto.CartItemResponse](t, resp)
	if len(items) != 1 || items[0].LineTotal != "50.00" {
		t.Fatalf("unexpected cart %+v", items)
	}

	resp = performRequest(t, http.MethodGet, "/cart/summary", "/cart/summary?deliveryOption=express", handler.Summary, asUser, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	summary := decode[dto.CartSummaryResponse](t, resp)
	if summary.Subtotal != "50.00" || summary.Tax != "4.00" || summary.DeliveryFee != "9.99" || summary.Total != "63.99" {
		t.Fatalf("unexpected summary %+v", summary)
	}

	resp = performRequest(t, http.MethodGet, "/cart/summary", "/cart/summary?deliveryOption=drone", handler.Summary, asUser, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown option, got %d", resp.Code)
	}
}

func TestCartHandlerMutations(t *testing.T) {
	var added struct {
		product int64
		qty     int
	}
	handler := NewCartHandler(facadestub.Storefront{
		AddFn: func(_ context.Context, _ int64, productID int64, qty int) (*model.CartItem, error) {
			added.product, added.qty = productID, qty
			if qty < 0 {
				return nil, domainErrors.ErrInvalidQuantity
			}
			return &model.CartItem{ID: 5, Product: facadestub.SampleProduct(), Quantity: qty}, nil
		},
		RemoveItemFn: func(_ context.Context, _ int64, itemID int64) error {
			if itemID != 5 {
				return domainErrors.ErrNotFound
			}
			return nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/cart/items", "/cart/items", handler.Add, asUser, []byte(`{"productId":1,"quantity":3}`))
	if resp.Code != http.StatusOK || added.product != 1 || added.qty != 3 {
		t.Fatalf("unexpected add result %d %+v", resp.Code, added)
	}
	resp = performRequest(t, http.MethodPost, "/cart/items", "/cart/items", handler.Add, asUser, []byte(`{"productId":1,"quantity":-1}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/cart/items/:id", "/cart/items/5", handler.Update, asUser, []byte(`{"quantity":4}`))
	if item := decode[dto.CartItemResponse](t, resp); item.Quantity != 4 {
		t.Fatalf("unexpected update %+v", item)
	}
	resp = performRequest(t, http.MethodPut, "/cart/items/:id", "/cart/items/5", handler.Update, asUser, []byte(`{"quantity":0}`))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 when quantity drops to zero, got %d", resp.Code)
	}

	if resp = performRequest(t, http.MethodDelete, "/cart/items/:id", "/cart/items/5", handler.Remove, asUser, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp = performRequest(t, http.MethodDelete, "/cart/items/:id", "/cart/items/6", handler.Remove, asUser, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if resp = performRequest(t, http.MethodDelete, "/cart", "/cart", handler.Clear, asUser, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	handler := NewOrderHandler(facadestub.Storefront{})
	body := mustJSON(t, dto.CheckoutRequest{
		PaymentForm: dto.PaymentForm{
			CardholderName: "Ada Lovelace",
			CardNumber:     "4242 4242 4242 4242",
			ExpiryDate:     "12/30",
			CVC:            "123",
			Address:        "1 Main St",
		},
		DeliveryOption: "express",
	})

	resp := performRequest(t, http.MethodPost, "/orders/checkout", "/orders/checkout", handler.Checkout, asUser, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	created := decode[dto.CheckoutResponse](t, resp)
	if created.OrderNumber != "ABCD1234" || created.DeliveryOption != "express" {
		t.Fatalf("unexpected checkout response %+v", created)
	}
}

func TestOrderHandlerCheckoutFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", payment.ValidationErrors{payment.FieldAddress: "Address is required"}, http.StatusUnprocessableEntity},
		{"empty cart", domainErrors.ErrEmptyCart, http.StatusUnprocessableEntity},
		{"cart changed", domainErrors.ErrCartChanged, http.StatusConflict},
		{"already placed", domainErrors.ErrAlreadyExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewOrderHandler(facadestub.Storefront{CheckoutFn: func(context.Context, int64, usecase.CheckoutRequest) (*model.Order, error) {
				return nil, tt.err
			}})
			resp := performRequest(t, http.MethodPost, "/orders/checkout", "/orders/checkout", handler.Checkout, asUser, []byte(`{}`))
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerListAndGet(t *testing.T) {
	handler := NewOrderHandler(facadestub.Storefront{})
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, asUser, nil)
	if orders := decode[[]dto.OrderResponse](t, resp); len(orders) != 1 || orders[0].Total != "0.00" {
		t.Fatalf("unexpected orders %+v", orders)
	}

	empty := NewOrderHandler(facadestub.Storefront{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}})
	if resp = performRequest(t, http.MethodGet, "/orders", "/orders", empty.List, asUser, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:number", "/orders/XYZ", handler.Get, asUser, nil)
	if order := decode[dto.OrderResponse](t, resp); order.Number != "XYZ" {
		t.Fatalf("unexpected order %+v", order)
	}

	missing := NewOrderHandler(facadestub.Storefront{OrderFn: func(context.Context, int64, string) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}})
	if resp = performRequest(t, http.MethodGet, "/orders/:number", "/orders/XYZ", missing.Get, asUser, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeliveryHandler(t *testing.T) {
	handler := NewDeliveryHandler(facadestub.Storefront{})

	resp := performRequest(t, http.MethodGet, "/delivery/options", "/delivery/options", handler.Options, nil, nil)
	options := decode[[]dto.DeliveryOptionResponse](t, resp)
	if len(options) != 3 {
		t.Fatalf("expected three delivery options, got %+v", options)
	}

	resp = performRequest(t, http.MethodGet, "/delivery/order/:number", "/delivery/order/ABCD1234", handler.ByOrder, asUser, nil)
	delivery := decode[dto.DeliveryResponse](t, resp)
	if delivery.TrackingNumber != "TRKABCD1234" || delivery.Timeline.CurrentIndex != 1 || !delivery.Timeline.Recognized {
		t.Fatalf("unexpected delivery %+v", delivery)
	}

	resp = performRequest(t, http.MethodGet, "/delivery/track/:tracking", "/delivery/track/TRKABCD1234", handler.ByTracking, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	missing := NewDeliveryHandler(facadestub.Storefront{TrackShipmentFn: func(context.Context, string) (*usecase.TrackedDelivery, error) {
		return nil, domainErrors.ErrNotFound
	}})
	if resp = performRequest(t, http.MethodGet, "/delivery/track/:tracking", "/delivery/track/NOPE", missing.ByTracking, nil, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestPaymentHandlerPreview(t *testing.T) {
	handler := NewPaymentHandler(facadestub.Storefront{})

	resp := performRequest(t, http.MethodPost, "/payment/preview", "/payment/preview", handler.Preview, nil,
		mustJSON(t, dto.PaymentForm{CardNumber: "42424242", ExpiryDate: "123", CVC: "12a"}))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	preview := decode[dto.PaymentPreviewResponse](t, resp)
	if preview.Form.CardNumber != "4242 4242" || preview.Form.ExpiryDate != "12/3" || preview.Form.CVC != "12" {
		t.Fatalf("unexpected formatted form %+v", preview.Form)
	}
	if preview.Valid || preview.Errors[payment.FieldCardNumber] == "" || preview.Errors[payment.FieldCVC] == "" {
		t.Fatalf("expected card number and cvc problems, got %+v", preview.Errors)
	}
	if _, ok := preview.Errors[payment.FieldExpiryDate]; ok {
		t.Fatal("incomplete expiry must not be reported")
	}

	resp = performRequest(t, http.MethodPost, "/payment/preview", "/payment/preview", handler.Preview, nil, []byte("{}"))
	if empty := decode[dto.PaymentPreviewResponse](t, resp); empty.Valid || len(empty.Errors) != 0 {
		t.Fatalf("empty form must be quiet but not valid, got %+v", empty)
	}

	resp = performRequest(t, http.MethodPost, "/payment/preview", "/payment/preview", handler.Preview, nil,
		mustJSON(t, dto.PaymentForm{CardholderName: "Ada", CardNumber: "4242424242424242", ExpiryDate: "1299", CVC: "123", Address: "1 Main St"}))
	if full := decode[dto.PaymentPreviewResponse](t, resp); !full.Valid {
		t.Fatalf("complete form must be valid, got %+v", full)
	}

	resp = performRequest(t, http.MethodPost, "/payment/preview", "/payment/preview", handler.Preview, nil, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestProductHandlerUpdate(t *testing.T) {
	var (
		gotUser, gotID int64
		got            model.ProductUpdate
	)
	handler := NewProductHandler(facadestub.Storefront{UpdateProductFn: func(_ context.Context, userID, id int64, upd model.ProductUpdate) (*model.Product, error) {
		gotUser, gotID, got = userID, id, upd
		p := facadestub.SampleProduct()
		p.Price = *upd.Price
		return &p, nil
	}})

	resp := performRequest(t, http.MethodPut, "/products/:id", "/products/1", handler.Update, asUser, []byte(`{"price":"19.9"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotUser != testUserID || gotID != 1 || got.Name != nil || got.Price == nil {
		t.Fatalf("unexpected update user=%d id=%d %+v", gotUser, gotID, got)
	}
	if product := decode[dto.ProductResponse](t, resp); product.Price != "19.90" {
		t.Fatalf("unexpected price %q", product.Price)
	}

	if resp := performRequest(t, http.MethodPut, "/products/:id", "/products/abc", handler.Update, asUser, []byte(`{}`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodPut, "/products/:id", "/products/1", handler.Update, asUser, []byte(`{"price":true}`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	forbidden := NewProductHandler(facadestub.Storefront{UpdateProductFn: func(context.Context, int64, int64, model.ProductUpdate) (*model.Product, error) {
		return nil, domainErrors.ErrForbidden
	}})
	if resp := performRequest(t, http.MethodPut, "/products/:id", "/products/1", forbidden.Update, asUser, []byte(`{"name":"x"}`)); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestProductHandlerDelete(t *testing.T) {
	var deleted int64
	handler := NewProductHandler(facadestub.Storefront{DeleteProductFn: func(_ context.Context, _ int64, id int64) error {
		deleted = id
		return nil
	}})
	if resp := performRequest(t, http.MethodDelete, "/products/:id", "/products/3", handler.Delete, asUser, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if deleted != 3 {
		t.Fatalf("expected product 3 deleted, got %d", deleted)
	}
	if resp := performRequest(t, http.MethodDelete, "/products/:id", "/products/0", handler.Delete, asUser, nil); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	missing := NewProductHandler(facadestub.Storefront{DeleteProductFn: func(context.Context, int64, int64) error {
		return domainErrors.ErrNotFound
	}})
	if resp := performRequest(t, http.MethodDelete, "/products/:id", "/products/3", missing.Delete, asUser, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProductHandlerBestsellers(t *testing.T) {
	var limit int
	handler := NewProductHandler(facadestub.Storefront{BestsellersFn: func(_ context.Context, n int) ([]model.Product, error) {
		limit = n
		return nil, nil
	}})

	resp := performRequest(t, http.MethodGet, "/bestsellers", "/bestsellers", handler.Bestsellers, nil, nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %d %s", resp.Code, resp.Body.String())
	}
	if limit != usecase.DefaultBestsellers {
		t.Fatalf("expected default limit, got %d", limit)
	}

	if resp := performRequest(t, http.MethodGet, "/bestsellers", "/bestsellers?limit=3", handler.Bestsellers, nil, nil); resp.Code != http.StatusOK || limit != 3 {
		t.Fatalf("expected limit 3, got %d (status %d)", limit, resp.Code)
	}
	for _, bad := range []string{"0", "-1", "many"} {
		if resp := performRequest(t, http.MethodGet, "/bestsellers", "/bestsellers?limit="+bad, handler.Bestsellers, nil, nil); resp.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: expected 400, got %d", bad, resp.Code)
		}
	}

	failing := NewProductHandler(facadestub.Storefront{BestsellersFn: func(context.Context, int) ([]model.Product, error) {
		return nil, errors.New("db down")
	}})
	if resp := performRequest(t, http.MethodGet, "/bestsellers", "/bestsellers", failing.Bestsellers, nil, nil); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
