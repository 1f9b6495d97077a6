package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babychic/storefront/internal/domain"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"products": []domain.Product{
				{ID: 1, Name: "Body", Price: 15000},
				{ID: 2, Name: "Chaussons", Price: 8000},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Body", products[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"product not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateOrder_Success(t *testing.T) {
	var received domain.Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order":{"orderNumber":"BC-2024-0042","total":30000}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	order := domain.Order{
		Items:    []domain.OrderItem{{ProductID: 1, Quantity: 2}},
		Customer: domain.Customer{FullName: "Awa N.", Phone: "+237690000001"},
		Delivery: domain.Delivery{City: "Douala", Address: "Akwa"},
		Payment:  domain.Payment{Method: domain.PaymentOrangeMoney},
	}

	conf, err := client.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "BC-2024-0042", conf.OrderNumber)
	assert.Equal(t, int64(30000), conf.Total)
	assert.Equal(t, order.Items, received.Items)
}

func TestCreateOrder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"out of stock"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	_, err := client.CreateOrder(context.Background(), domain.Order{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "out of stock", apiErr.Message)
}

func TestCreateOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, nil)
	_, err := client.CreateOrder(context.Background(), domain.Order{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
