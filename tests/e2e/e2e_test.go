package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicemarket/internal/database"
	"servicemarket/internal/domain"
	"servicemarket/internal/middleware"
	"servicemarket/internal/modules/auth"
	"servicemarket/internal/modules/offer"
	"servicemarket/internal/modules/order"
	"servicemarket/internal/modules/profile"
	"servicemarket/internal/modules/review"
	jwtsvc "servicemarket/internal/pkg/jwt"
	"servicemarket/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r *TestResponse) dataMap(t *testing.T) map[string]interface{} {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &m))
	return m
}

func (r *TestResponse) dataList(t *testing.T) []map[string]interface{} {
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &l))
	return l
}

func setupTestSuite(t *testing.T, name string) *E2ETestSuite {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, profileRepo, jwtService))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo, userRepo))
	offerHandler := offer.NewHandler(offer.NewService(offerRepo, profileRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, offerRepo, userRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, offerRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	authHandler.RegisterRoutes(api)

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(jwtService))
	{
		profileHandler.RegisterRoutes(protected)
		offerHandler.RegisterRoutes(protected)
		orderHandler.RegisterRoutes(protected)
		reviewHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "unparseable response: %s", w.Body.String())
	return &resp
}

// register creates an account through the API and returns its token and id.
func (s *E2ETestSuite) register(t *testing.T, username, userType string) (string, int64) {
	w := s.makeRequest(t, "POST", "/api/registration", map[string]interface{}{
		"username":          username,
		"email":             username + "@mail.de",
		"password":          "examplePassword",
		"repeated_password": "examplePassword",
		"type":              userType,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	data := parseResponse(t, w).dataMap(t)
	return data["token"].(string), int64(data["user_id"].(float64))
}

func (s *E2ETestSuite) createOffer(t *testing.T, token, title string) map[string]interface{} {
	detail := func(tier string, price float64, days int) map[string]interface{} {
		return map[string]interface{}{
			"title":                 tier + " Design",
			"revisions":             2,
			"delivery_time_in_days": days,
			"price":                 price,
			"features":              []string{"Logo Design"},
			"offer_type":            tier,
		}
	}
	w := s.makeRequest(t, "POST", "/api/offers", map[string]interface{}{
		"title":       title,
		"description": "Professionelles Grafikdesign",
		"details": []map[string]interface{}{
			detail("basic", 100, 5),
			detail("standard", 200, 7),
			detail("premium", 500, 10),
		},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "offer creation failed: %s", w.Body.String())
	return parseResponse(t, w).dataMap(t)
}

func TestFlow_RegistrationAndProfile(t *testing.T) {
	suite := setupTestSuite(t, "e2e_auth")

	var token string
	var userID int64

	t.Run("POST /api/registration", func(t *testing.T) {
		token, userID = suite.register(t, "andrey", "customer")
		assert.NotEmpty(t, token)
		assert.NotZero(t, userID)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/registration", map[string]interface{}{
			"username":          "andrey",
			"email":             "other@mail.de",
			"password":          "examplePassword",
			"repeated_password": "examplePassword",
			"type":              "customer",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ALREADY_EXISTS", parseResponse(t, w).Error.Code)
	})

	t.Run("POST /api/login", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/login", map[string]interface{}{
			"username": "andrey",
			"password": "examplePassword",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).dataMap(t)
		assert.NotEmpty(t, data["token"])
		assert.Equal(t, "andrey@mail.de", data["email"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/login", map[string]interface{}{
			"username": "andrey",
			"password": "wrong",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /api/profile/:user_id", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/profile/%d", userID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).dataMap(t)
		assert.Equal(t, "andrey", data["username"])
		assert.Equal(t, "customer", data["type"])
	})

	t.Run("PATCH own profile", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/profile/%d", userID), map[string]interface{}{
			"first_name": "Andrey",
			"location":   "Berlin",
		}, token)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).dataMap(t)
		assert.Equal(t, "Andrey", data["first_name"])
		assert.Equal(t, "Berlin", data["location"])
	})

	t.Run("PATCH foreign profile is forbidden", func(t *testing.T) {
		otherToken, _ := suite.register(t, "eve", "customer")
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/profile/%d", userID), map[string]interface{}{
			"first_name": "Hacked",
		}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token means unauthorized", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/profile/%d", userID), nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_OfferLifecycle(t *testing.T) {
	suite := setupTestSuite(t, "e2e_offers")

	businessToken, businessID := suite.register(t, "kevin", "business")
	customerToken, _ := suite.register(t, "andrey", "customer")

	var offerID int64

	t.Run("business creates an offer with three tiers", func(t *testing.T) {
		data := suite.createOffer(t, businessToken, "Grafikdesign-Paket")
		offerID = int64(data["id"].(float64))
		assert.Equal(t, float64(100), data["min_price"])
		assert.Equal(t, float64(5), data["min_delivery_time"])
		assert.Len(t, data["details"], 3)
	})

	t.Run("customer cannot create offers", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/offers", map[string]interface{}{}, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("two details are rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/offers", map[string]interface{}{
			"title":       "Unvollstaendig",
			"description": "x",
			"details": []map[string]interface{}{
				{"title": "a", "delivery_time_in_days": 1, "price": 10, "offer_type": "basic"},
				{"title": "b", "delivery_time_in_days": 2, "price": 20, "offer_type": "standard"},
			},
		}, businessToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list shows aggregates and owner details", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/offers?creator_id="+fmt.Sprint(businessID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).dataMap(t)
		assert.Equal(t, float64(1), data["count"])
		results := data["results"].([]interface{})
		first := results[0].(map[string]interface{})
		assert.Equal(t, "Grafikdesign-Paket", first["title"])
		owner := first["user_details"].(map[string]interface{})
		assert.Equal(t, "kevin", owner["username"])
	})

	t.Run("detail endpoint resolves the locator URL", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/offers/%d", offerID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		details := parseResponse(t, w).dataMap(t)["details"].([]interface{})
		detailID := int64(details[0].(map[string]interface{})["id"].(float64))

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/offerdetails/%d", detailID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("owner patches one tier", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/offers/%d", offerID), map[string]interface{}{
			"details": []map[string]interface{}{
				{"offer_type": "basic", "price": 150},
			},
		}, businessToken)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).dataMap(t)
		assert.Equal(t, float64(150), data["min_price"])
	})

	t.Run("non-owner cannot patch", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/offers/%d", offerID), map[string]interface{}{
			"title": "Hijacked",
		}, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner deletes the offer", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/offers/%d", offerID), nil, businessToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/offers/%d", offerID), nil, businessToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_OrdersAndCounts(t *testing.T) {
	suite := setupTestSuite(t, "e2e_orders")

	businessToken, businessID := suite.register(t, "kevin", "business")
	customerToken, _ := suite.register(t, "andrey", "customer")

	offerData := suite.createOffer(t, businessToken, "Logo Design")
	details := offerData["details"].([]interface{})
	detailID := int64(details[0].(map[string]interface{})["id"].(float64))

	var orderID int64

	t.Run("customer orders a tier", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/orders", map[string]interface{}{
			"offer_detail_id": detailID,
		}, customerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := parseResponse(t, w).dataMap(t)
		orderID = int64(data["id"].(float64))
		assert.Equal(t, "in_progress", data["status"])
		assert.Equal(t, float64(businessID), data["business_user"])
	})

	t.Run("business cannot place orders", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/orders", map[string]interface{}{
			"offer_detail_id": detailID,
		}, businessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("both sides see the order", func(t *testing.T) {
		for _, token := range []string{customerToken, businessToken} {
			w := suite.makeRequest(t, "GET", "/api/orders", nil, token)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, parseResponse(t, w).dataList(t), 1)
		}
	})

	t.Run("customer cannot change the status", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{
			"status": "completed",
		}, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("business completes the order", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{
			"status": "completed",
		}, businessToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "completed", parseResponse(t, w).dataMap(t)["status"])
	})

	t.Run("completed orders are final", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{
			"status": "in_progress",
		}, businessToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("order counts per business user", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/order-count/%d", businessID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), parseResponse(t, w).dataMap(t)["order_count"])

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/completed-order-count/%d", businessID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), parseResponse(t, w).dataMap(t)["completed_order_count"])
	})

	t.Run("count for unknown business user is 404", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/order-count/99999", nil, customerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("only staff may delete orders", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/orders/%d", orderID), nil, businessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// Promote an account to staff directly, tokens are issued from the user row.
		staff := &domain.User{Username: "root", Email: "root@mail.de", PasswordHash: "x", Role: domain.RoleCustomer, IsStaff: true}
		require.NoError(t, suite.db.Create(staff).Error)
		staffToken, err := suite.jwtService.GenerateToken(staff.ID, string(staff.Role), staff.IsStaff)
		require.NoError(t, err)

		w = suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/orders/%d", orderID), nil, staffToken)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestFlow_Reviews(t *testing.T) {
	suite := setupTestSuite(t, "e2e_reviews")

	businessToken, businessID := suite.register(t, "kevin", "business")
	customerToken, _ := suite.register(t, "andrey", "customer")
	secondToken, _ := suite.register(t, "birgit", "customer")

	offerData := suite.createOffer(t, businessToken, "Logo Design")
	offerID := int64(offerData["id"].(float64))

	var reviewID int64

	t.Run("customer reviews via business_user reference", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"business_user": businessID,
			"rating":        4,
			"description":   "Sehr professioneller Service",
		}, customerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := parseResponse(t, w).dataMap(t)
		reviewID = int64(data["id"].(float64))
		assert.Equal(t, float64(offerID), data["offer"])
	})

	t.Run("second review for the same offer is a conflict", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"offer":  offerID,
			"rating": 1,
		}, customerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)
	})

	t.Run("business users cannot write reviews", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"offer":  offerID,
			"rating": 5,
		}, businessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rating outside 1..5 is rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"offer":  offerID,
			"rating": 6,
		}, secondToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("business sees reviews on own offers", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/reviews", nil, businessToken)
		require.Equal(t, http.StatusOK, w.Code)
		reviews := parseResponse(t, w).dataList(t)
		require.Len(t, reviews, 1)
		assert.Equal(t, float64(4), reviews[0]["rating"])
	})

	t.Run("author updates the rating", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/reviews/%d", reviewID), map[string]interface{}{
			"rating": 5,
		}, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(5), parseResponse(t, w).dataMap(t)["rating"])
	})

	t.Run("non-author cannot update or delete", func(t *testing.T) {
		w := suite.makeRequest(t, "PATCH", fmt.Sprintf("/api/reviews/%d", reviewID), map[string]interface{}{
			"rating": 1,
		}, secondToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/reviews/%d", reviewID), nil, secondToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("author deletes, a new review becomes possible", func(t *testing.T) {
		w := suite.makeRequest(t, "DELETE", fmt.Sprintf("/api/reviews/%d", reviewID), nil, customerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest(t, "POST", "/api/reviews", map[string]interface{}{
			"offer":  offerID,
			"rating": 3,
		}, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
